// Package constants holds the lifecycle statuses and enumerations of the
// CRM entities.
package constants

// LeadStatus ...
type LeadStatus string

// LeadStatus enum values
const (
	LeadStatusNew          LeadStatus = "new"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusQualified    LeadStatus = "qualified"
	LeadStatusConverted    LeadStatus = "converted"
	LeadStatusDisqualified LeadStatus = "disqualified"
)

// OpportunityStage ...
type OpportunityStage string

// OpportunityStage enum values
const (
	OpportunityStageProspecting OpportunityStage = "prospecting"
	OpportunityStageProposal    OpportunityStage = "proposal"
	OpportunityStageNegotiation OpportunityStage = "negotiation"
	OpportunityStageClosedWon   OpportunityStage = "closed_won"
	OpportunityStageClosedLost  OpportunityStage = "closed_lost"
)

// EventStatus ...
type EventStatus string

// EventStatus enum values
const (
	EventStatusInquiry    EventStatus = "inquiry"
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// DocumentKind distinguishes invoices from quotes, both stored in the
// billing_documents table.
type DocumentKind string

// DocumentKind enum values
const (
	DocumentKindInvoice DocumentKind = "invoice"
	DocumentKindQuote   DocumentKind = "quote"
)

// DocumentStatus ...
type DocumentStatus string

// DocumentStatus enum values
const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusSent     DocumentStatus = "sent"
	DocumentStatusPaid     DocumentStatus = "paid"
	DocumentStatusOverdue  DocumentStatus = "overdue"
	DocumentStatusVoid     DocumentStatus = "void"
	DocumentStatusAccepted DocumentStatus = "accepted"
	DocumentStatusDeclined DocumentStatus = "declined"
)

// TicketStatus ...
type TicketStatus string

// TicketStatus enum values
const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority ...
type TicketPriority string

// TicketPriority enum values
const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TaskStatus ...
type TaskStatus string

// TaskStatus enum values
const (
	TaskStatusOpen      TaskStatus = "open"
	TaskStatusDone      TaskStatus = "done"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// InventoryStatus ...
type InventoryStatus string

// InventoryStatus enum values
const (
	InventoryStatusAvailable   InventoryStatus = "available"
	InventoryStatusReserved    InventoryStatus = "reserved"
	InventoryStatusDeployed    InventoryStatus = "deployed"
	InventoryStatusMaintenance InventoryStatus = "maintenance"
	InventoryStatusRetired     InventoryStatus = "retired"
)

// TenantStatus ...
type TenantStatus string

// TenantStatus enum values
const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// TriggerEvent is the entity lifecycle event a workflow fires on.
type TriggerEvent string

// TriggerEvent enum values
const (
	TriggerEventCreated       TriggerEvent = "created"
	TriggerEventUpdated       TriggerEvent = "updated"
	TriggerEventStatusChanged TriggerEvent = "status_changed"
)

// ActionKind is the kind of a workflow action.
type ActionKind string

// ActionKind enum values
const (
	ActionKindCreateTask       ActionKind = "create_task"
	ActionKindUpdateField      ActionKind = "update_field"
	ActionKindSendNotification ActionKind = "send_notification"
)

// ExecutionStatus is the outcome of one workflow firing.
type ExecutionStatus string

// ExecutionStatus enum values
const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusSucceeded ExecutionStatus = "succeeded"
	ExecutionStatusFailed    ExecutionStatus = "failed"
)

func (s LeadStatus) String() string       { return string(s) }
func (s OpportunityStage) String() string { return string(s) }
func (s EventStatus) String() string      { return string(s) }
func (s DocumentKind) String() string     { return string(s) }
func (s DocumentStatus) String() string   { return string(s) }
func (s TicketStatus) String() string     { return string(s) }
func (s TicketPriority) String() string   { return string(s) }
func (s TaskStatus) String() string       { return string(s) }
func (s InventoryStatus) String() string  { return string(s) }
func (s TenantStatus) String() string     { return string(s) }
func (s TriggerEvent) String() string     { return string(s) }
func (s ActionKind) String() string       { return string(s) }
func (s ExecutionStatus) String() string  { return string(s) }
