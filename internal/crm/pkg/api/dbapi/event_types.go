package dbapi

import (
	"database/sql"
	"time"

	"github.com/boothworks/crm-manager/pkg/api"
)

// Event is a booked booth engagement.
type Event struct {
	api.Meta
	TenantID      string `gorm:"index"`
	Name          string
	EventType     string `gorm:"index"`
	Status        string `gorm:"index"`
	AccountID     string `gorm:"index"`
	ContactID     string
	OpportunityID string
	VenueName     string
	VenueAddress  string
	StartTime     time.Time `gorm:"index"`
	EndTime       time.Time
	GuestCount    int
	Notes         string
	// ReminderTaskCreated is set by the event reminder worker so the
	// pre-event task is only created once.
	ReminderTaskCreated bool
}

// EventList ...
type EventList []*Event

// StaffAssignment places one staff member on an event in a given role.
type StaffAssignment struct {
	api.Meta
	TenantID   string `gorm:"index"`
	EventID    string `gorm:"index"`
	StaffName  string
	StaffEmail string `gorm:"index"`
	Role       string
	StartTime  time.Time
	EndTime    time.Time
}

// StaffAssignmentList ...
type StaffAssignmentList []*StaffAssignment

// InventoryItem is a piece of booth hardware.
type InventoryItem struct {
	api.Meta
	TenantID     string `gorm:"index"`
	Name         string
	SKU          string `gorm:"index"`
	SerialNumber string `gorm:"index"`
	Category     string
	Status       string `gorm:"index"`
	PurchaseDate sql.NullTime
	Notes        string
}

// InventoryItemList ...
type InventoryItemList []*InventoryItem
