package dbapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boothworks/crm-manager/pkg/db"
)

// Models are passed to gorm Update() as whole structs, so none of them may
// carry pointer fields.
func TestModelsHaveNoPointerFields(t *testing.T) {
	models := map[string]any{
		"Contact":           &Contact{},
		"Account":           &Account{},
		"Lead":              &Lead{},
		"Opportunity":       &Opportunity{},
		"Event":             &Event{},
		"StaffAssignment":   &StaffAssignment{},
		"InventoryItem":     &InventoryItem{},
		"BillingDocument":   &BillingDocument{},
		"LineItem":          &LineItem{},
		"Ticket":            &Ticket{},
		"Task":              &Task{},
		"TaskTemplate":      &TaskTemplate{},
		"Notification":      &Notification{},
		"Workflow":          &Workflow{},
		"WorkflowAction":    &WorkflowAction{},
		"WorkflowExecution": &WorkflowExecution{},
		"Tenant":            &Tenant{},
	}
	for name, model := range models {
		assert.True(t, db.IsStructWithoutPointers(model), "%s has pointer fields", name)
	}
}
