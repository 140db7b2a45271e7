// Package schema resolves user field configuration into the canonical
// semantic roles the reconciliation engine matches and merges on.
//
// Bill fields are an open, user-extensible set: the same logical field
// may arrive as "vendor", "issuer_name", or "company" depending on
// which extractor and which user mapping produced it. This package
// collapses that variety into seven fixed roles and, per role, an
// ordered list of field names to probe on a record.
package schema

import "strings"

// Role is one of the canonical semantic field categories.
type Role string

// The seven canonical roles.
const (
	RoleVendor        Role = "vendor"
	RoleAmount        Role = "amount"
	RoleDate          Role = "date"
	RoleDueDate       Role = "due_date"
	RoleInvoiceNumber Role = "invoice_number"
	RoleAccountNumber Role = "account_number"
	RoleCategory      Role = "category"
)

// Roles lists every canonical role in a stable order.
var Roles = []Role{
	RoleVendor,
	RoleAmount,
	RoleDate,
	RoleDueDate,
	RoleInvoiceNumber,
	RoleAccountNumber,
	RoleCategory,
}

// FieldMapping is one user-defined schema entry: a custom field name
// and an optional explicit role. When FieldType is absent the role is
// inferred from the name.
type FieldMapping struct {
	Name      string `json:"name" yaml:"name"`
	FieldType string `json:"field_type,omitempty" yaml:"field_type,omitempty"`
}

// FieldTypeMap maps each canonical role to the ordered list of field
// names to probe on a record. Built once per deduplication run.
type FieldTypeMap map[Role][]string

// canonicalNames are the field names the extractors use when no user
// mapping applies. Always the final probe fallback for their role.
var canonicalNames = map[Role]string{
	RoleVendor:        "vendor",
	RoleAmount:        "amount",
	RoleDate:          "date",
	RoleDueDate:       "dueDate",
	RoleInvoiceNumber: "invoiceNumber",
	RoleAccountNumber: "accountNumber",
	RoleCategory:      "category",
}

// CanonicalName returns the extractor field name for a role.
func CanonicalName(role Role) string {
	return canonicalNames[role]
}

// defaultFieldNames are the per-role synonym probe lists used when the
// user has no field mappings. The canonical name is last in each list.
var defaultFieldNames = map[Role][]string{
	RoleVendor:        {"vendor_name", "company", "issuer", "merchant", "payee", "biller", "vendor"},
	RoleAmount:        {"total", "total_amount", "amount_due", "cost", "balance_due", "amount"},
	RoleDate:          {"invoice_date", "issue_date", "bill_date", "statement_date", "date"},
	RoleDueDate:       {"due_date", "payment_due", "payment_date", "deadline", "dueDate"},
	RoleInvoiceNumber: {"invoice_number", "invoice_no", "bill_number", "reference", "invoiceNumber"},
	RoleAccountNumber: {"account_number", "account_no", "account", "accountNumber"},
	RoleCategory:      {"expense_category", "bill_type", "category"},
}

// roleKeywords is the name-inference table, consulted in order with
// plain substring tests; the first hit wins. Ordering is load-bearing:
// due-date keywords come before plain date keywords so "payment_due_date"
// is not misread as an invoice date, and account-number comes before
// invoice-number so "account_number" is not captured by "number".
var roleKeywords = []struct {
	role     Role
	keywords []string
}{
	{RoleVendor, []string{"vendor", "issuer", "company", "merchant", "payee", "biller"}},
	{RoleAmount, []string{"amount", "total", "cost", "price", "balance"}},
	{RoleDueDate, []string{"due", "payment", "deadline"}},
	{RoleDate, []string{"date", "issued"}},
	{RoleAccountNumber, []string{"account"}},
	{RoleInvoiceNumber, []string{"invoice", "number", "reference", "ref"}},
	{RoleCategory, []string{"category", "type"}},
}

// ParseRole maps an explicit field_type value onto a canonical role.
// Accepts snake_case, camelCase, kebab-case and spaced spellings.
func ParseRole(s string) (Role, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, r := range []string{"_", "-", " "} {
		norm = strings.ReplaceAll(norm, r, "")
	}
	switch norm {
	case "vendor":
		return RoleVendor, true
	case "amount":
		return RoleAmount, true
	case "date":
		return RoleDate, true
	case "duedate":
		return RoleDueDate, true
	case "invoicenumber":
		return RoleInvoiceNumber, true
	case "accountnumber":
		return RoleAccountNumber, true
	case "category":
		return RoleCategory, true
	}
	return "", false
}

// InferRole infers a role from a field name via the keyword table.
func InferRole(name string) (Role, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "", false
	}
	for _, entry := range roleKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.role, true
			}
		}
	}
	return "", false
}

// Resolve builds a FieldTypeMap from the active user mappings.
//
// Each mapping contributes its name to the probe list of its explicit
// role, or of the role inferred from its name. Mappings with an
// unrecognized field_type and an un-inferable name are skipped for
// typing purposes; their values still pass through merges verbatim.
// Roles left without any mapping fall back to the default synonym
// lists, and the canonical field name is appended to every list as the
// ultimate fallback. Resolve never fails.
func Resolve(mappings []FieldMapping) FieldTypeMap {
	ftm := make(FieldTypeMap, len(Roles))
	for _, m := range mappings {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		role, ok := ParseRole(m.FieldType)
		if !ok {
			role, ok = InferRole(name)
		}
		if !ok {
			continue
		}
		ftm[role] = appendUnique(ftm[role], name)
	}
	for _, role := range Roles {
		if len(ftm[role]) == 0 {
			ftm[role] = append([]string(nil), defaultFieldNames[role]...)
		}
		ftm[role] = appendUnique(ftm[role], CanonicalName(role))
	}
	return ftm
}

func appendUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
