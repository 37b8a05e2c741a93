package public

import "time"

// Ticket ...
type Ticket struct {
	ObjectReference
	Subject        string    `json:"subject"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	RequesterEmail string    `json:"requester_email,omitempty"`
	AccountId      string    `json:"account_id,omitempty"`
	EventId        string    `json:"event_id,omitempty"`
	AssignedTo     string    `json:"assigned_to,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TicketRequestPayload ...
type TicketRequestPayload struct {
	Subject        string `json:"subject"`
	Description    string `json:"description,omitempty"`
	Priority       string `json:"priority,omitempty"`
	RequesterEmail string `json:"requester_email,omitempty"`
	AccountId      string `json:"account_id,omitempty"`
	EventId        string `json:"event_id,omitempty"`
	AssignedTo     string `json:"assigned_to,omitempty"`
}

// TicketUpdateRequest ...
type TicketUpdateRequest struct {
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

// TicketList ...
type TicketList struct {
	Kind  string   `json:"kind"`
	Page  int32    `json:"page"`
	Size  int32    `json:"size"`
	Total int32    `json:"total"`
	Items []Ticket `json:"items"`
}

// Task ...
type Task struct {
	ObjectReference
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	EntityType  string     `json:"entity_type,omitempty"`
	EntityId    string     `json:"entity_id,omitempty"`
	TemplateId  string     `json:"template_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskRequestPayload ...
type TaskRequestPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	EntityType  string     `json:"entity_type,omitempty"`
	EntityId    string     `json:"entity_id,omitempty"`
}

// TaskUpdateRequest ...
type TaskUpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
}

// TaskList ...
type TaskList struct {
	Kind  string `json:"kind"`
	Page  int32  `json:"page"`
	Size  int32  `json:"size"`
	Total int32  `json:"total"`
	Items []Task `json:"items"`
}

// TaskTemplate ...
type TaskTemplate struct {
	ObjectReference
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueInDays   int       `json:"due_in_days,omitempty"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskTemplateRequestPayload ...
type TaskTemplateRequestPayload struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueInDays   int    `json:"due_in_days,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// TaskTemplateList ...
type TaskTemplateList struct {
	Kind  string         `json:"kind"`
	Page  int32          `json:"page"`
	Size  int32          `json:"size"`
	Total int32          `json:"total"`
	Items []TaskTemplate `json:"items"`
}
