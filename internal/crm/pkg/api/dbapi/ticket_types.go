package dbapi

import (
	"database/sql"

	"github.com/boothworks/crm-manager/pkg/api"
)

// Ticket is a support issue raised by or on behalf of a customer.
type Ticket struct {
	api.Meta
	TenantID       string `gorm:"index"`
	Subject        string
	Description    string
	Status         string `gorm:"index"`
	Priority       string `gorm:"index"`
	RequesterEmail string
	AccountID      string `gorm:"index"`
	EventID        string
	AssignedTo     string
}

// TicketList ...
type TicketList []*Ticket

// Task is an actionable to-do, optionally linked to the entity it was
// raised for and to the template it was instantiated from.
type Task struct {
	api.Meta
	TenantID    string `gorm:"index"`
	Title       string
	Description string
	Status      string `gorm:"index"`
	DueAt       sql.NullTime
	AssignedTo  string
	EntityType  string `gorm:"index"`
	EntityID    string `gorm:"index"`
	TemplateID  string
}

// TaskList ...
type TaskList []*Task

// TaskTemplate is the blueprint the workflow engine instantiates tasks from.
type TaskTemplate struct {
	api.Meta
	TenantID    string `gorm:"index"`
	Name        string
	Title       string
	Description string
	// DueInDays offsets the task due date from the moment of instantiation.
	DueInDays  int
	AssignedTo string
}

// TaskTemplateList ...
type TaskTemplateList []*TaskTemplate

// Notification is an outbound message recorded by the send_notification
// workflow action. Delivery is handled out of band.
type Notification struct {
	api.Meta
	TenantID       string `gorm:"index"`
	RecipientEmail string
	Subject        string
	Body           string
	Status         string `gorm:"index"`
	EntityType     string
	EntityID       string
	SentAt         sql.NullTime
}

// NotificationList ...
type NotificationList []*Notification
