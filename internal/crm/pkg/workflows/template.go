package workflows

import (
	"fmt"
	"regexp"
)

var validColumnName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// protectedColumns are never writable through update_field actions.
var protectedColumns = map[string]bool{
	"id":         true,
	"tenant_id":  true,
	"created_at": true,
	"updated_at": true,
	"deleted_at": true,
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-z][a-z0-9_]*)\s*\}\}`)

// renderTemplate substitutes {{field}} placeholders with entity field values.
// Unknown placeholders render empty.
func renderTemplate(text string, fields map[string]interface{}) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := fields[key]
		if !ok || value == nil {
			return ""
		}
		return fmt.Sprintf("%v", value)
	})
}
