package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/pkg/bills"
	"github.com/billfold/billfold/pkg/logging"
)

// fixedClock pins merge heuristics to a known instant.
var fixedNow = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestDeduper() *Deduper {
	return New(
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logging.Nop),
	)
}

func TestMergeStampsIdentity(t *testing.T) {
	d := newTestDeduper()
	pdf := pdfRecord("m1", map[string]any{"vendor": "Acme Inc"})
	pdf.Confidence = 0.9
	email := emailRecord("m1", map[string]any{"vendor": "acme"})
	email.Confidence = 0.6

	got := d.merge(pdf, email)

	assert.NotEmpty(t, got.ID)
	assert.NotEqual(t, pdf.ID, got.ID)
	assert.NotEqual(t, email.ID, got.ID)
	assert.Equal(t, bills.OriginCombined, got.Origin)
	assert.Equal(t, email.SourceDocumentID, got.SourceDocumentID)
	assert.Equal(t, pdf.AttachmentID, got.AttachmentID)
	assert.Equal(t, 0.9, got.Confidence)
}

func TestMergeConfidenceFloorsAtZero(t *testing.T) {
	d := newTestDeduper()
	pdf := pdfRecord("m1", nil)
	pdf.Confidence = -1
	email := emailRecord("m1", nil)
	email.Confidence = -0.5

	assert.Equal(t, 0.0, d.merge(pdf, email).Confidence)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	d := newTestDeduper()
	pdf := pdfRecord("m1", map[string]any{"vendor": "Acme Inc", "amount": 100.0})
	email := emailRecord("m1", map[string]any{"vendor": "acme", "amount": 100.5})

	_ = d.merge(pdf, email)

	assert.Equal(t, "Acme Inc", pdf.Fields["vendor"])
	assert.Equal(t, 100.0, pdf.Fields["amount"])
	assert.Equal(t, "acme", email.Fields["vendor"])
	assert.Equal(t, 100.5, email.Fields["amount"])
	assert.Equal(t, bills.OriginPDF, pdf.Origin)
	assert.Equal(t, bills.OriginEmail, email.Origin)
}

func TestMergeSingleSidedFields(t *testing.T) {
	d := newTestDeduper()
	pdf := pdfRecord("m1", map[string]any{"accountNumber": "AC-1"})
	email := emailRecord("m1", map[string]any{"category": "utilities"})

	got := d.merge(pdf, email)

	assert.Equal(t, "AC-1", got.Fields["accountNumber"])
	assert.Equal(t, "utilities", got.Fields["category"])
}

func TestMergeStringRules(t *testing.T) {
	d := newTestDeduper()
	tests := []struct {
		name  string
		field string
		pdf   any
		email any
		want  any
	}{
		{"placeholder loses", "vendor", "Unknown", "Acme Inc", "Acme Inc"},
		{"placeholder loses either way", "vendor", "Acme Inc", "N/A", "Acme Inc"},
		{"generic vendor term loses", "vendor", "Service Provider", "Acme Inc", "Acme Inc"},
		{"generic on email side loses", "vendor", "Acme Inc", "merchant", "Acme Inc"},
		{"markedly longer email value wins", "category", "util", "utilities and water", "utilities and water"},
		{"comparable lengths keep pdf", "category", "utility", "utilities", "utility"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := pdfRecord("m1", map[string]any{tt.field: tt.pdf})
			email := emailRecord("m1", map[string]any{tt.field: tt.email})
			assert.Equal(t, tt.want, d.merge(pdf, email).Fields[tt.field])
		})
	}
}

func TestMergeNumberRules(t *testing.T) {
	d := newTestDeduper()
	tests := []struct {
		name  string
		field string
		pdf   any
		email any
		want  any
	}{
		{"zero loses", "amount", 0.0, 45.9, 45.9},
		{"zero loses either way", "amount", 45.9, 0.0, 45.9},
		{"within tolerance more precise wins", "amount", 100.0, 100.04, 100.04},
		{"within tolerance pdf precision wins", "amount", 100.04, 100.0, 100.04},
		{"beyond tolerance larger magnitude wins", "amount", 40.0, 140.0, 140.0},
		{"beyond tolerance larger pdf wins", "amount", 140.0, 40.0, 140.0},
		{"non-amount numeric keeps pdf", "page_count", 3, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := pdfRecord("m1", map[string]any{tt.field: tt.pdf})
			email := emailRecord("m1", map[string]any{tt.field: tt.email})
			assert.Equal(t, tt.want, d.merge(pdf, email).Fields[tt.field])
		})
	}
}

func TestMergeDateRules(t *testing.T) {
	d := newTestDeduper()
	past := "2026-05-01"
	future := "2026-07-01"
	today := "2026-06-01"

	tests := []struct {
		name  string
		field string
		pdf   any
		email any
		want  any
	}{
		{"due date prefers future side", "dueDate", past, future, future},
		{"due date prefers future pdf", "dueDate", future, past, future},
		{"both future keeps pdf", "dueDate", "2026-08-01", future, "2026-08-01"},
		{"today is a suspicious default", "date", today, past, past},
		{"today on email side loses", "date", past, today, past},
		{"plain dates keep pdf", "date", past, "2026-05-02", past},
		{"unparseable side discarded", "date", "whenever", past, past},
		{"unparseable email side discarded", "date", past, "whenever", past},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := pdfRecord("m1", map[string]any{tt.field: tt.pdf})
			email := emailRecord("m1", map[string]any{tt.field: tt.email})
			assert.Equal(t, tt.want, d.merge(pdf, email).Fields[tt.field])
		})
	}
}

func TestMergeUnknownFieldDefaultsToPDF(t *testing.T) {
	d := newTestDeduper()
	pdf := pdfRecord("m1", map[string]any{"notes": "from the pdf"})
	email := emailRecord("m1", map[string]any{"notes": 42})

	// Mixed types with no role: structured pdf text wins.
	assert.Equal(t, "from the pdf", d.merge(pdf, email).Fields["notes"])
}

func TestDecimalPlaces(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{100.04, 2},
		{100.0, 0},
		{"100.500", 3},
		{"100", 0},
		{42, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, decimalPlaces(tt.in), "input %v", tt.in)
	}
}

func TestMergePrefersNonPlaceholderOverLength(t *testing.T) {
	d := newTestDeduper()
	pdf := pdfRecord("m1", map[string]any{"vendor": ""})
	email := emailRecord("m1", map[string]any{"vendor": "Acme"})

	got := d.merge(pdf, email)
	require.Equal(t, "Acme", got.Fields["vendor"])
}
