package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferRole(t *testing.T) {
	tests := []struct {
		name string
		want Role
		ok   bool
	}{
		{"issuer_name", RoleVendor, true},
		{"Company", RoleVendor, true},
		{"total_amount", RoleAmount, true},
		{"cost", RoleAmount, true},
		// due-date keywords must win over plain date keywords
		{"due_date", RoleDueDate, true},
		{"payment_due_date", RoleDueDate, true},
		{"deadline", RoleDueDate, true},
		{"invoice_date", RoleDate, true},
		{"issued", RoleDate, true},
		// account-number must win over the generic "number" keyword
		{"account_number", RoleAccountNumber, true},
		{"invoice_number", RoleInvoiceNumber, true},
		{"reference", RoleInvoiceNumber, true},
		{"expense_category", RoleCategory, true},
		{"notes", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferRole(tt.name)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"vendor", RoleVendor, true},
		{"due_date", RoleDueDate, true},
		{"dueDate", RoleDueDate, true},
		{"due-date", RoleDueDate, true},
		{"Invoice Number", RoleInvoiceNumber, true},
		{"accountnumber", RoleAccountNumber, true},
		{"banana", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		require.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestResolveDefaults(t *testing.T) {
	ftm := Resolve(nil)

	for _, role := range Roles {
		names := ftm[role]
		require.NotEmpty(t, names, "role %s", role)
		assert.Equal(t, CanonicalName(role), names[len(names)-1],
			"canonical name must be the last fallback for %s", role)
	}
	assert.Contains(t, ftm[RoleVendor], "issuer")
	assert.Contains(t, ftm[RoleAmount], "total")
}

func TestResolveUserMappings(t *testing.T) {
	ftm := Resolve([]FieldMapping{
		{Name: "issuer_name"},                            // inferred vendor
		{Name: "grand_total", FieldType: "amount"},       // explicit role
		{Name: "mystery_field"},                          // un-inferable, skipped
		{Name: "weird", FieldType: "not_a_role"},         // unrecognized type, un-inferable name
		{Name: "settlement_no", FieldType: "invoice-number"},
		{Name: ""},                                       // blank name, skipped
	})

	assert.Equal(t, []string{"issuer_name", "vendor"}, ftm[RoleVendor])
	assert.Equal(t, []string{"grand_total", "amount"}, ftm[RoleAmount])
	assert.Equal(t, []string{"settlement_no", "invoiceNumber"}, ftm[RoleInvoiceNumber])

	// Roles the user never mapped keep their default synonym lists.
	assert.Contains(t, ftm[RoleDueDate], "due_date")
}

func TestResolveDeduplicatesNames(t *testing.T) {
	ftm := Resolve([]FieldMapping{
		{Name: "vendor"},
		{Name: "vendor", FieldType: "vendor"},
	})
	assert.Equal(t, []string{"vendor"}, ftm[RoleVendor])
}
