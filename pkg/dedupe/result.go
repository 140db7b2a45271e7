package dedupe

import "github.com/billfold/billfold/pkg/bills"

// Result is the outcome of one deduplication run.
type Result struct {
	// Records is the deduplicated output. Every input record is
	// traceable into exactly one output record, either unchanged or
	// as a contributor to a combined record.
	Records []bills.Record

	// Report summarizes the run.
	Report Report

	// Errors holds the recovered per-group failures. A non-empty list
	// means reduced merge quality, never data loss.
	Errors []error
}

// Report summarizes one deduplication run for logging and operator
// output.
type Report struct {
	// Input and Output are the list lengths before and after the run.
	// Output never exceeds Input.
	Input  int `json:"input" yaml:"input"`
	Output int `json:"output" yaml:"output"`

	// Merged counts pdf/email pairs combined into one record.
	Merged int `json:"merged" yaml:"merged"`

	// PassedThrough counts records emitted before grouping: manual
	// origin or missing source document id.
	PassedThrough int `json:"passed_through" yaml:"passed_through"`

	// Groups counts distinct source documents processed.
	Groups int `json:"groups" yaml:"groups"`

	// GroupFailures counts groups recovered from a processing failure
	// and emitted unmerged.
	GroupFailures int `json:"group_failures" yaml:"group_failures"`

	// ByOrigin counts input records per origin.
	ByOrigin map[bills.Origin]int `json:"by_origin" yaml:"by_origin"`
}
