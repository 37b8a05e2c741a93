package public

import (
	"encoding/json"
	"time"
)

// Workflow ...
type Workflow struct {
	ObjectReference
	Name         string           `json:"name"`
	Enabled      bool             `json:"enabled"`
	EntityType   string           `json:"entity_type"`
	TriggerEvent string           `json:"trigger_event"`
	MatchFilter  json.RawMessage  `json:"match_filter,omitempty"`
	Actions      []WorkflowAction `json:"actions"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// WorkflowAction ...
type WorkflowAction struct {
	Id       string          `json:"id,omitempty"`
	Position int             `json:"position"`
	Kind     string          `json:"kind"`
	Params   json.RawMessage `json:"params,omitempty"`
}

// WorkflowRequestPayload ...
type WorkflowRequestPayload struct {
	Name         string           `json:"name"`
	Enabled      *bool            `json:"enabled,omitempty"`
	EntityType   string           `json:"entity_type"`
	TriggerEvent string           `json:"trigger_event"`
	MatchFilter  json.RawMessage  `json:"match_filter,omitempty"`
	Actions      []WorkflowAction `json:"actions"`
}

// WorkflowList ...
type WorkflowList struct {
	Kind  string     `json:"kind"`
	Page  int32      `json:"page"`
	Size  int32      `json:"size"`
	Total int32      `json:"total"`
	Items []Workflow `json:"items"`
}

// WorkflowExecution ...
type WorkflowExecution struct {
	ObjectReference
	WorkflowId    string          `json:"workflow_id"`
	EntityType    string          `json:"entity_type"`
	EntityId      string          `json:"entity_id"`
	TriggerEvent  string          `json:"trigger_event"`
	Status        string          `json:"status"`
	ActionResults json.RawMessage `json:"action_results,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// WorkflowExecutionList ...
type WorkflowExecutionList struct {
	Kind  string              `json:"kind"`
	Page  int32               `json:"page"`
	Size  int32               `json:"size"`
	Total int32               `json:"total"`
	Items []WorkflowExecution `json:"items"`
}

// Tenant ...
type Tenant struct {
	ObjectReference
	Name         string    `json:"name"`
	Subdomain    string    `json:"subdomain"`
	Status       string    `json:"status"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Plan         string    `json:"plan,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TenantRequestPayload ...
type TenantRequestPayload struct {
	Name         string `json:"name"`
	Subdomain    string `json:"subdomain"`
	ContactEmail string `json:"contact_email,omitempty"`
	Plan         string `json:"plan,omitempty"`
}

// TenantUpdateRequest ...
type TenantUpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	Status       *string `json:"status,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Plan         *string `json:"plan,omitempty"`
}

// TenantList ...
type TenantList struct {
	Kind  string   `json:"kind"`
	Page  int32    `json:"page"`
	Size  int32    `json:"size"`
	Total int32    `json:"total"`
	Items []Tenant `json:"items"`
}

// ServiceStatus ...
type ServiceStatus struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
}
