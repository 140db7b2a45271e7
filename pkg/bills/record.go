// Package bills defines the bill record model shared by the extraction
// boundary and the reconciliation engine. A record carries a small set
// of typed reserved fields plus an open-ended side table of extracted
// fields, keyed by whatever names the extractors or the user's field
// mappings produced.
package bills

import "strings"

// Origin identifies which extractor produced a record.
type Origin string

// Known origins.
const (
	OriginEmail    Origin = "email"
	OriginPDF      Origin = "pdf"
	OriginCombined Origin = "combined"
	OriginManual   Origin = "manual"
)

// ParseOrigin normalizes a raw origin tag. Unknown tags are passed
// through lowercased; the reconciler treats anything that is not
// unambiguously pdf as email-side.
func ParseOrigin(s string) Origin {
	return Origin(strings.ToLower(strings.TrimSpace(s)))
}

// Record is one candidate bill produced by an extractor.
//
// Reserved identity fields are typed; everything else lives in Fields.
// Values in Fields are string, float64 (or another numeric type),
// time.Time, or nil. Records are immutable once handed to the
// reconciler: the engine clones before writing, never mutates inputs.
type Record struct {
	// ID is unique per record. Combined records receive a fresh one.
	ID string

	// SourceDocumentID identifies the originating document, typically
	// an email message id. Records without one bypass grouping.
	SourceDocumentID string

	// Origin tags the producing extractor.
	Origin Origin

	// AttachmentID is set only for pdf-origin records and is inherited
	// by the combined record a pdf record contributes to.
	AttachmentID string

	// Confidence is the extractor's 0..1 confidence, zero when the
	// extractor did not report one.
	Confidence float64

	// Fields is the open-ended extracted field set.
	Fields map[string]any
}

// Field returns the named extracted field value.
func (r Record) Field(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Clone returns a copy of the record with its own Fields map.
func (r Record) Clone() Record {
	out := r
	out.Fields = make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// IsPlaceholder reports whether v is one of the junk values the
// extractors emit when a field could not be read: nil, the empty
// string, or the literal "Unknown"/"N/A" markers.
func IsPlaceholder(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch strings.TrimSpace(s) {
	case "", "Unknown", "N/A":
		return true
	}
	return false
}
