package public

import "time"

// Event ...
type Event struct {
	ObjectReference
	Name          string    `json:"name"`
	EventType     string    `json:"event_type"`
	Status        string    `json:"status"`
	AccountId     string    `json:"account_id,omitempty"`
	ContactId     string    `json:"contact_id,omitempty"`
	OpportunityId string    `json:"opportunity_id,omitempty"`
	VenueName     string    `json:"venue_name,omitempty"`
	VenueAddress  string    `json:"venue_address,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	GuestCount    int       `json:"guest_count,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EventRequestPayload ...
type EventRequestPayload struct {
	Name          string    `json:"name"`
	EventType     string    `json:"event_type"`
	AccountId     string    `json:"account_id,omitempty"`
	ContactId     string    `json:"contact_id,omitempty"`
	OpportunityId string    `json:"opportunity_id,omitempty"`
	VenueName     string    `json:"venue_name,omitempty"`
	VenueAddress  string    `json:"venue_address,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	GuestCount    int       `json:"guest_count,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// EventUpdateRequest ...
type EventUpdateRequest struct {
	Name         *string    `json:"name,omitempty"`
	EventType    *string    `json:"event_type,omitempty"`
	Status       *string    `json:"status,omitempty"`
	VenueName    *string    `json:"venue_name,omitempty"`
	VenueAddress *string    `json:"venue_address,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	GuestCount   *int       `json:"guest_count,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// EventList ...
type EventList struct {
	Kind  string  `json:"kind"`
	Page  int32   `json:"page"`
	Size  int32   `json:"size"`
	Total int32   `json:"total"`
	Items []Event `json:"items"`
}

// StaffAssignment ...
type StaffAssignment struct {
	ObjectReference
	EventId    string    `json:"event_id"`
	StaffName  string    `json:"staff_name"`
	StaffEmail string    `json:"staff_email"`
	Role       string    `json:"role"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StaffAssignmentRequestPayload ...
type StaffAssignmentRequestPayload struct {
	StaffName  string     `json:"staff_name"`
	StaffEmail string     `json:"staff_email"`
	Role       string     `json:"role"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
}

// StaffAssignmentList ...
type StaffAssignmentList struct {
	Kind  string            `json:"kind"`
	Page  int32             `json:"page"`
	Size  int32             `json:"size"`
	Total int32             `json:"total"`
	Items []StaffAssignment `json:"items"`
}

// InventoryItem ...
type InventoryItem struct {
	ObjectReference
	Name         string     `json:"name"`
	SKU          string     `json:"sku,omitempty"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Category     string     `json:"category,omitempty"`
	Status       string     `json:"status"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// InventoryItemRequestPayload ...
type InventoryItemRequestPayload struct {
	Name         string     `json:"name"`
	SKU          string     `json:"sku,omitempty"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Category     string     `json:"category,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// InventoryItemUpdateRequest ...
type InventoryItemUpdateRequest struct {
	Name         *string    `json:"name,omitempty"`
	SKU          *string    `json:"sku,omitempty"`
	SerialNumber *string    `json:"serial_number,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Status       *string    `json:"status,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// InventoryItemList ...
type InventoryItemList struct {
	Kind  string          `json:"kind"`
	Page  int32           `json:"page"`
	Size  int32           `json:"size"`
	Total int32           `json:"total"`
	Items []InventoryItem `json:"items"`
}
