package dedupe

import (
	"math"
	"strings"
	"time"

	"github.com/billfold/billfold/pkg/bills"
	"github.com/billfold/billfold/pkg/schema"
)

// matcher decides whether a pdf-side and an email-side record from the
// same source document describe the same bill.
//
// No single extracted signal is reliable alone: vendor names come out
// inconsistently, dates can reflect issue vs receipt time, and amounts
// can include or exclude fees. A match therefore requires at least two
// corroborating signals, except when an invoice number is available,
// which is treated as authoritative on its own. A signal for which
// either side has no usable values is simply unavailable; it neither
// confirms nor refutes.
type matcher struct {
	cfg Config
	ftm schema.FieldTypeMap
}

// isMatch evaluates the rules in order, short-circuiting on an exact
// invoice-number hit. The composite rule is
// (vendor AND amount) OR (vendor AND date AND exact-amount-pair);
// amount or date never match on their own.
func (m matcher) isMatch(pdf, email bills.Record) bool {
	if m.invoiceNumberMatch(pdf, email) {
		return true
	}
	vendor := m.vendorMatch(pdf, email)
	if !vendor {
		return false
	}
	amount, exact := m.amountMatch(pdf, email)
	if amount {
		return true
	}
	return exact && m.dateMatch(pdf, email)
}

// invoiceNumberMatch reports whether any pdf/email invoice-number pair
// is exactly equal. Case-sensitive: invoice numbers are opaque keys.
func (m matcher) invoiceNumberMatch(pdf, email bills.Record) bool {
	pv := m.stringValues(pdf, schema.RoleInvoiceNumber)
	ev := m.stringValues(email, schema.RoleInvoiceNumber)
	for _, a := range pv {
		for _, b := range ev {
			if a == b {
				return true
			}
		}
	}
	return false
}

// vendorMatch compares vendor values case-insensitively and trimmed; a
// pair matches on equality or substring containment either way, since
// one extractor often sees "Acme" where the other sees "Acme Inc".
func (m matcher) vendorMatch(pdf, email bills.Record) bool {
	pv := m.stringValues(pdf, schema.RoleVendor)
	ev := m.stringValues(email, schema.RoleVendor)
	for _, a := range pv {
		la := strings.ToLower(a)
		for _, b := range ev {
			lb := strings.ToLower(b)
			if la == lb || strings.Contains(la, lb) || strings.Contains(lb, la) {
				return true
			}
		}
	}
	return false
}

// amountMatch compares all numeric amount pairs. A pair is within
// tolerance when its relative difference is at most AmountTolerance;
// pairs containing a zero are skipped for the tolerance test to avoid
// false positives on unextracted amounts. exact reports whether any
// pair is exactly equal, which the composite rule uses as a stronger
// corroborator alongside a date hit.
func (m matcher) amountMatch(pdf, email bills.Record) (within, exact bool) {
	pv := m.numberValues(pdf, schema.RoleAmount)
	ev := m.numberValues(email, schema.RoleAmount)
	for _, a := range pv {
		for _, b := range ev {
			if a == b {
				exact = true
			}
			if a == 0 || b == 0 {
				continue
			}
			if relativeDiff(a, b) <= m.cfg.AmountTolerance {
				within = true
			}
		}
	}
	return within, exact
}

// dateMatch reports whether any pdf/email date pair falls within the
// configured calendar-day window, inclusive.
func (m matcher) dateMatch(pdf, email bills.Record) bool {
	pv := m.timeValues(pdf, schema.RoleDate)
	ev := m.timeValues(email, schema.RoleDate)
	for _, a := range pv {
		for _, b := range ev {
			if daysApart(a, b) <= m.cfg.DateWindowDays {
				return true
			}
		}
	}
	return false
}

// stringValues returns the role's values that coerce to non-empty
// strings. Unparseable values degrade the signal, never the run.
func (m matcher) stringValues(rec bills.Record, role schema.Role) []string {
	var out []string
	for _, v := range schema.ValuesForRole(rec, role, m.ftm) {
		if s, ok := bills.AsString(v); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (m matcher) numberValues(rec bills.Record, role schema.Role) []float64 {
	var out []float64
	for _, v := range schema.ValuesForRole(rec, role, m.ftm) {
		if n, ok := bills.AsNumber(v); ok {
			out = append(out, n)
		}
	}
	return out
}

func (m matcher) timeValues(rec bills.Record, role schema.Role) []time.Time {
	var out []time.Time
	for _, v := range schema.ValuesForRole(rec, role, m.ftm) {
		if t, ok := bills.AsTime(v); ok {
			out = append(out, t)
		}
	}
	return out
}

// relativeDiff is |a-b| / max(|a|,|b|). Callers guarantee a and b are
// non-zero.
func relativeDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}

// daysApart is the absolute calendar-day distance between two dates,
// ignoring time of day.
func daysApart(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
