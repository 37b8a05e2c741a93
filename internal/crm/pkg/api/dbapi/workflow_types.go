package dbapi

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"

	"github.com/boothworks/crm-manager/pkg/api"
)

// Workflow is a stored trigger plus an ordered list of actions, executed
// synchronously whenever the trigger fires.
type Workflow struct {
	api.Meta
	TenantID     string `gorm:"index"`
	Name         string
	Enabled      bool   `gorm:"index"`
	EntityType   string `gorm:"index"`
	TriggerEvent string `gorm:"index"`
	// MatchFilter is an optional JSON object of field=value pairs that must
	// all match the triggering entity for the workflow to fire.
	MatchFilter datatypes.JSON

	Actions []WorkflowAction `gorm:"foreignKey:WorkflowID"`
}

// WorkflowList ...
type WorkflowList []*Workflow

// WorkflowAction is one step of a workflow, run in ascending Position order.
type WorkflowAction struct {
	api.Meta
	TenantID   string `gorm:"index"`
	WorkflowID string `gorm:"index"`
	Position   int
	Kind       string
	// Params carries the action-specific settings, e.g. the task template ID
	// for create_task or field/value for update_field.
	Params datatypes.JSON
}

// WorkflowExecution is the audit record of one workflow firing.
type WorkflowExecution struct {
	api.Meta
	TenantID     string `gorm:"index"`
	WorkflowID   string `gorm:"index"`
	EntityType   string
	EntityID     string `gorm:"index"`
	TriggerEvent string
	Status       string `gorm:"index"`
	// ActionResults is a JSON array with one entry per attempted action.
	ActionResults datatypes.JSON
	ErrorMessage  string
	StartedAt     time.Time
	CompletedAt   sql.NullTime
}

// WorkflowExecutionList ...
type WorkflowExecutionList []*WorkflowExecution
