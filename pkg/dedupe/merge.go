package dedupe

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/billfold/billfold/pkg/bills"
	"github.com/billfold/billfold/pkg/schema"
)

// genericVendorTerms are values a failed vendor extraction tends to
// produce. A merge prefers any concrete name over these.
var genericVendorTerms = map[string]bool{
	"vendor":           true,
	"company":          true,
	"business":         true,
	"merchant":         true,
	"service provider": true,
	"unknown":          true,
}

// merge combines a matched pdf/email pair into one combined record.
//
// The email record is the base; every field name present on either
// side is re-resolved with a per-type select-best rule. The combined
// record gets a fresh ID, keeps the email side's SourceDocumentID,
// inherits the pdf side's AttachmentID, and carries the higher of the
// two extraction confidences. Inputs are never mutated.
func (d *Deduper) merge(pdf, email bills.Record) bills.Record {
	out := email.Clone()
	out.ID = uuid.NewString()
	out.Origin = bills.OriginCombined
	out.AttachmentID = pdf.AttachmentID
	out.Confidence = maxConfidence(pdf.Confidence, email.Confidence)

	// Email-only fields are already in the base copy; resolving the
	// pdf side covers both pdf-only and contested fields.
	for name := range pdf.Fields {
		out.Fields[name] = d.bestFieldValue(name, pdf.Fields[name], email.Fields[name])
	}
	return out
}

// bestFieldValue picks the better of two values for one field. The
// rule is keyed on the field's inferred role and the value types;
// anything without a more specific rule falls back to the pdf value,
// since PDFs tend to carry more structured text.
func (d *Deduper) bestFieldValue(name string, pv, ev any) any {
	if ev == nil {
		return pv
	}
	if pv == nil {
		return ev
	}

	role, _ := schema.InferRole(name)
	switch role {
	case schema.RoleDate, schema.RoleDueDate:
		return d.bestDate(role, pv, ev)
	}

	pn, pNum := bills.AsNumber(pv)
	en, eNum := bills.AsNumber(ev)
	_, pStr := pv.(string)
	_, eStr := ev.(string)
	switch {
	case pNum && eNum && (role == schema.RoleAmount || (!pStr && !eStr)):
		return d.bestNumber(role, pv, ev, pn, en)
	case pStr && eStr:
		return d.bestString(role, pv.(string), ev.(string))
	}
	return pv
}

// bestString prefers the non-placeholder side, then (for vendor-like
// fields) the non-generic name, then the markedly longer value on the
// assumption that longer extractions carry more detail, then the pdf.
func (d *Deduper) bestString(role schema.Role, ps, es string) any {
	pPlace, ePlace := bills.IsPlaceholder(ps), bills.IsPlaceholder(es)
	switch {
	case pPlace && ePlace:
		return ps
	case pPlace:
		return es
	case ePlace:
		return ps
	}

	if role == schema.RoleVendor {
		pGeneric := genericVendorTerms[strings.ToLower(strings.TrimSpace(ps))]
		eGeneric := genericVendorTerms[strings.ToLower(strings.TrimSpace(es))]
		if pGeneric && !eGeneric {
			return es
		}
		if eGeneric && !pGeneric {
			return ps
		}
	}

	pl := len(strings.TrimSpace(ps))
	el := len(strings.TrimSpace(es))
	if float64(el) >= float64(pl)*d.cfg.LengthRatio {
		return es
	}
	if float64(pl) >= float64(el)*d.cfg.LengthRatio {
		return ps
	}
	return ps
}

// bestNumber prefers the non-zero side. For amount-like fields, values
// within tolerance of each other are assumed to be the same charge and
// the more precise rendering wins; values further apart prefer the
// larger magnitude, since truncated partial extractions produce
// spuriously small numbers. Other numeric fields keep the pdf value.
func (d *Deduper) bestNumber(role schema.Role, pv, ev any, pn, en float64) any {
	switch {
	case pn == 0 && en != 0:
		return ev
	case en == 0 && pn != 0:
		return pv
	case pn == 0 && en == 0:
		return pv
	}

	if role != schema.RoleAmount {
		return pv
	}
	if relativeDiff(pn, en) <= d.cfg.AmountTolerance {
		if decimalPlaces(ev) > decimalPlaces(pv) {
			return ev
		}
		return pv
	}
	if abs(en) > abs(pn) {
		return ev
	}
	return pv
}

// bestDate discards sides that fail to parse. Due-date-like fields
// prefer whichever side is still in the future; other date fields
// treat a value equal to today as a suspicious extractor default and
// prefer the opposite side. Remaining ties keep the pdf value.
func (d *Deduper) bestDate(role schema.Role, pv, ev any) any {
	pt, pok := bills.AsTime(pv)
	et, eok := bills.AsTime(ev)
	switch {
	case !pok && !eok:
		return pv
	case !pok:
		return ev
	case !eok:
		return pv
	}

	now := d.cfg.Now()
	if role == schema.RoleDueDate {
		pFuture, eFuture := pt.After(now), et.After(now)
		if pFuture && !eFuture {
			return pv
		}
		if eFuture && !pFuture {
			return ev
		}
		return pv
	}

	pToday := daysApart(pt, now) == 0
	eToday := daysApart(et, now) == 0
	if pToday && !eToday {
		return ev
	}
	if eToday && !pToday {
		return pv
	}
	return pv
}

// decimalPlaces counts fractional digits in the value's original
// rendering; floats use their shortest round-trip form.
func decimalPlaces(v any) int {
	var s string
	switch n := v.(type) {
	case string:
		s = strings.TrimSpace(n)
	case float64:
		s = strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return 0
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func maxConfidence(a, b float64) float64 {
	out := 0.0
	if a > out {
		out = a
	}
	if b > out {
		out = b
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
