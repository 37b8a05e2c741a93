package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_renderTemplate(t *testing.T) {
	fields := map[string]interface{}{
		"name":        "Nguyen wedding",
		"status":      "confirmed",
		"guest_count": 140,
		"notes":       nil,
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no placeholders", "Follow up with the venue", "Follow up with the venue"},
		{"single placeholder", "Prepare for {{name}}", "Prepare for Nguyen wedding"},
		{"whitespace inside braces", "Event is {{ status }}", "Event is confirmed"},
		{"numeric field", "{{guest_count}} guests expected", "140 guests expected"},
		{"unknown placeholder renders empty", "Assigned to {{owner}}", "Assigned to "},
		{"nil field renders empty", "Notes: {{notes}}", "Notes: "},
		{"multiple placeholders", "{{name}} is {{status}}", "Nguyen wedding is confirmed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderTemplate(tt.text, fields))
		})
	}
}

func Test_validColumnName(t *testing.T) {
	assert.True(t, validColumnName.MatchString("status"))
	assert.True(t, validColumnName.MatchString("tax_rate_bps"))
	assert.False(t, validColumnName.MatchString("Status"))
	assert.False(t, validColumnName.MatchString("1column"))
	assert.False(t, validColumnName.MatchString("status; DROP TABLE contacts"))
	assert.False(t, validColumnName.MatchString(""))
}

func Test_protectedColumns(t *testing.T) {
	for _, column := range []string{"id", "tenant_id", "created_at", "updated_at", "deleted_at"} {
		assert.True(t, protectedColumns[column], column)
	}
	assert.False(t, protectedColumns["status"])
}
