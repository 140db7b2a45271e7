package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info().Str("document_id", "m1").Int("records", 3).Msg("grouped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "grouped", entry["message"])
	assert.Equal(t, "m1", entry["document_id"])
	assert.Equal(t, float64(3), entry["records"])
	assert.Contains(t, entry, "time")
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	// Unparseable names leave the level unchanged.
	SetLevel("shout")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere.
	Nop.Error().Str("k", "v").Msg("dropped")
}
