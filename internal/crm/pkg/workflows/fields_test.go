package workflows

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/api"
)

func TestFieldsOf(t *testing.T) {
	issued := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	document := &dbapi.BillingDocument{
		Meta:       api.Meta{ID: "document-1", CreatedAt: issued, UpdatedAt: issued},
		TenantID:   "tenant-1",
		Kind:       "invoice",
		Status:     "sent",
		IssueDate:  issued,
		DueDate:    sql.NullTime{},
		TotalCents: 85000,
	}

	fields := FieldsOf(document)

	assert.Equal(t, "document-1", fields["id"])
	assert.Equal(t, "invoice", fields["kind"])
	assert.Equal(t, "sent", fields["status"])
	assert.Equal(t, int64(85000), fields["total_cents"])
	assert.Equal(t, "2026-03-14T00:00:00Z", fields["issue_date"])
	// Unset nullable times collapse to nil.
	assert.Nil(t, fields["due_date"])
	// gorm bookkeeping never leaks into filters.
	assert.NotContains(t, fields, "created_at")
	assert.NotContains(t, fields, "updated_at")
	assert.NotContains(t, fields, "deleted_at")
}

func TestFieldsOf_nonStruct(t *testing.T) {
	assert.Empty(t, FieldsOf(nil))
	assert.Empty(t, FieldsOf((*dbapi.Contact)(nil)))
	assert.Empty(t, FieldsOf("not a struct"))
}

func Test_toSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ID", "id"},
		{"TenantID", "tenant_id"},
		{"FirstName", "first_name"},
		{"TaxRateBps", "tax_rate_bps"},
		{"SKU", "sku"},
		{"ReminderTaskCreated", "reminder_task_created"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, toSnakeCase(tt.in))
		})
	}
}

func Test_matchesFilter(t *testing.T) {
	fields := map[string]interface{}{
		"status":      "sent",
		"total_cents": int64(85000),
		"kind":        "invoice",
	}

	tests := []struct {
		name   string
		filter map[string]interface{}
		want   bool
	}{
		{"empty filter matches everything", map[string]interface{}{}, true},
		{"single matching entry", map[string]interface{}{"status": "sent"}, true},
		{"all entries must match", map[string]interface{}{"status": "sent", "kind": "quote"}, false},
		{"unknown field never matches", map[string]interface{}{"owner": "sam"}, false},
		// Filters arrive from JSON where numbers decode as float64.
		{"json number matches integer column", map[string]interface{}{"total_cents": float64(85000)}, true},
		{"json number mismatch", map[string]interface{}{"total_cents": float64(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesFilter(tt.filter, fields))
		})
	}
}
