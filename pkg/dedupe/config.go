// Package dedupe reconciles candidate bill records produced by the
// email-body and PDF-attachment extractors. Records from the same
// source document are compared with multiple approximate signals;
// pairs judged to describe the same bill are merged into a single
// combined record with the best value chosen per field.
//
// The engine is a pure, synchronous transformation: it performs no
// I/O, holds no state across runs, and never mutates its inputs.
package dedupe

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/billfold/billfold/pkg/logging"
)

// Config holds the match and merge heuristics. The defaults are the
// tuned production values; they live in configuration because they
// encode business judgment rather than invariants.
type Config struct {
	// AmountTolerance is the maximum relative difference for two
	// amounts to be treated as the same charge. Guards against
	// rounding and formatting drift between extractors.
	AmountTolerance float64

	// DateWindowDays is the maximum calendar-day distance, inclusive,
	// for two dates to corroborate a match.
	DateWindowDays int

	// LengthRatio is how much longer one string value must be before
	// it is preferred as the more detailed value in a merge.
	LengthRatio float64

	// Now supplies the current time for due-date and today checks
	// during merges. Injectable for deterministic tests.
	Now func() time.Time
}

// DefaultConfig returns the production heuristics.
func DefaultConfig() Config {
	return Config{
		AmountTolerance: 0.01,
		DateWindowDays:  7,
		LengthRatio:     1.5,
		Now:             time.Now,
	}
}

// Deduper runs deduplication over batches of records.
type Deduper struct {
	cfg    Config
	logger zerolog.Logger
}

// Option configures a Deduper.
type Option func(*Deduper)

// WithConfig replaces the default heuristics. Zero-valued fields fall
// back to their defaults so callers can set only what they tune.
func WithConfig(cfg Config) Option {
	return func(d *Deduper) {
		def := DefaultConfig()
		if cfg.AmountTolerance <= 0 {
			cfg.AmountTolerance = def.AmountTolerance
		}
		if cfg.DateWindowDays <= 0 {
			cfg.DateWindowDays = def.DateWindowDays
		}
		if cfg.LengthRatio <= 1 {
			cfg.LengthRatio = def.LengthRatio
		}
		if cfg.Now == nil {
			cfg.Now = def.Now
		}
		d.cfg = cfg
	}
}

// WithLogger sets the logger used for run summaries and group-failure
// recoveries.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Deduper) { d.logger = logger }
}

// WithClock overrides the time source used by merge heuristics.
func WithClock(now func() time.Time) Option {
	return func(d *Deduper) { d.cfg.Now = now }
}

// New creates a Deduper with the default configuration.
func New(opts ...Option) *Deduper {
	d := &Deduper{
		cfg:    DefaultConfig(),
		logger: *logging.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
