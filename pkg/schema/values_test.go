package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billfold/billfold/pkg/bills"
)

func testRecord(fields map[string]any) bills.Record {
	return bills.Record{ID: "r1", SourceDocumentID: "m1", Origin: bills.OriginEmail, Fields: fields}
}

func TestValuesForRolePreservesProbeOrder(t *testing.T) {
	ftm := Resolve([]FieldMapping{
		{Name: "issuer_name"},
		{Name: "company_name", FieldType: "vendor"},
	})
	rec := testRecord(map[string]any{
		"company_name": "Acme Incorporated",
		"issuer_name":  "Acme",
		"vendor":       "acme inc",
	})

	got := ValuesForRole(rec, RoleVendor, ftm)
	assert.Equal(t, []any{"Acme", "Acme Incorporated", "acme inc"}, got)
}

func TestValuesForRoleSkipsPlaceholders(t *testing.T) {
	ftm := Resolve(nil)
	rec := testRecord(map[string]any{
		"vendor_name": "Unknown",
		"company":     "",
		"issuer":      "N/A",
		"merchant":    nil,
		"vendor":      "Acme",
	})

	got := ValuesForRole(rec, RoleVendor, ftm)
	assert.Equal(t, []any{"Acme"}, got)
}

func TestValuesForRoleEmpty(t *testing.T) {
	ftm := Resolve(nil)
	rec := testRecord(map[string]any{"notes": "hello"})

	assert.Empty(t, ValuesForRole(rec, RoleAmount, ftm))
}

func TestBestValue(t *testing.T) {
	ftm := Resolve(nil)
	rec := testRecord(map[string]any{
		"total":  "N/A",
		"cost":   42.5,
		"amount": 40.0,
	})

	assert.Equal(t, 42.5, BestValue(rec, RoleAmount, ftm, nil))
	assert.Equal(t, "none", BestValue(rec, RoleCategory, ftm, "none"))
}
