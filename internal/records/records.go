// Package records reads and writes bill-record and field-mapping
// files at the storage boundary. YAML and JSON are supported, picked
// by file extension. The reconciliation core never touches disk; this
// package exists for the CLI and other callers that feed it.
package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/billfold/billfold/pkg/bills"
	billerrors "github.com/billfold/billfold/pkg/errors"
	"github.com/billfold/billfold/pkg/schema"
)

// fileRecord is the wire shape of one record on disk.
type fileRecord struct {
	ID               string         `json:"id,omitempty" yaml:"id,omitempty"`
	SourceDocumentID string         `json:"source_document_id,omitempty" yaml:"source_document_id,omitempty"`
	Origin           string         `json:"origin" yaml:"origin"`
	AttachmentID     string         `json:"attachment_id,omitempty" yaml:"attachment_id,omitempty"`
	Confidence       float64        `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Fields           map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// LoadRecords reads a record file. Records without an id are assigned
// a fresh one, matching what the extractors do on ingest.
func LoadRecords(path string) ([]bills.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}

	var raw []fileRecord
	if err := unmarshal(path, data, &raw); err != nil {
		return nil, fmt.Errorf("decoding records file %s: %w", path, err)
	}

	out := make([]bills.Record, 0, len(raw))
	for _, fr := range raw {
		rec := bills.Record{
			ID:               fr.ID,
			SourceDocumentID: fr.SourceDocumentID,
			Origin:           bills.ParseOrigin(fr.Origin),
			AttachmentID:     fr.AttachmentID,
			Confidence:       fr.Confidence,
			Fields:           fr.Fields,
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.Fields == nil {
			rec.Fields = map[string]any{}
		}
		out = append(out, rec)
	}
	return out, nil
}

// EncodeYAML renders records in the on-disk YAML shape, for callers
// that stream to stdout instead of a file.
func EncodeYAML(recs []bills.Record) ([]byte, error) {
	return yaml.Marshal(toFileRecords(recs))
}

// SaveRecords writes records to path in the format its extension
// names.
func SaveRecords(path string, recs []bills.Record) error {
	data, err := marshal(path, toFileRecords(recs))
	if err != nil {
		return fmt.Errorf("encoding records for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing records file: %w", err)
	}
	return nil
}

func toFileRecords(recs []bills.Record) []fileRecord {
	raw := make([]fileRecord, 0, len(recs))
	for _, rec := range recs {
		raw = append(raw, fileRecord{
			ID:               rec.ID,
			SourceDocumentID: rec.SourceDocumentID,
			Origin:           string(rec.Origin),
			AttachmentID:     rec.AttachmentID,
			Confidence:       rec.Confidence,
			Fields:           rec.Fields,
		})
	}
	return raw
}

// LoadMappings reads a field-mapping file. A missing file is not an
// error at this layer; callers passing no mappings get schema
// defaults.
func LoadMappings(path string) ([]schema.FieldMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mappings file: %w", err)
	}

	var mappings []schema.FieldMapping
	if err := unmarshal(path, data, &mappings); err != nil {
		return nil, fmt.Errorf("decoding mappings file %s: %w", path, err)
	}
	return mappings, nil
}

func unmarshal(path string, data []byte, v any) error {
	switch format(path) {
	case "yaml":
		return yaml.Unmarshal(data, v)
	case "json":
		return json.Unmarshal(data, v)
	}
	return fmt.Errorf("%w: %s", billerrors.ErrUnsupportedFormat, filepath.Ext(path))
}

func marshal(path string, v any) ([]byte, error) {
	switch format(path) {
	case "yaml":
		return yaml.Marshal(v)
	case "json":
		return json.MarshalIndent(v, "", "  ")
	}
	return nil, fmt.Errorf("%w: %s", billerrors.ErrUnsupportedFormat, filepath.Ext(path))
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	return ""
}
