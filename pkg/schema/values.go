package schema

import "github.com/billfold/billfold/pkg/bills"

// ValuesForRole returns every present, non-placeholder value the
// record carries for the role's field names, preserving probe order.
// A record may define several synonyms that are individually sparse,
// so callers get the full candidate list rather than a single value.
func ValuesForRole(rec bills.Record, role Role, ftm FieldTypeMap) []any {
	var out []any
	for _, name := range ftm[role] {
		v, ok := rec.Field(name)
		if !ok || bills.IsPlaceholder(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// BestValue returns the first present, non-placeholder value for the
// role's field names in probe order, else fallback.
func BestValue(rec bills.Record, role Role, ftm FieldTypeMap, fallback any) any {
	for _, name := range ftm[role] {
		v, ok := rec.Field(name)
		if !ok || bills.IsPlaceholder(v) {
			continue
		}
		return v
	}
	return fallback
}
