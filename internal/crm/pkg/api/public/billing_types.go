package public

import "time"

// BillingDocument ...
type BillingDocument struct {
	ObjectReference
	DocumentKind string     `json:"document_kind"`
	Number       string     `json:"number"`
	Status       string     `json:"status"`
	AccountId    string     `json:"account_id,omitempty"`
	EventId      string     `json:"event_id,omitempty"`
	IssueDate    time.Time  `json:"issue_date"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Currency     string     `json:"currency"`
	Notes        string     `json:"notes,omitempty"`

	SubtotalCents int64 `json:"subtotal_cents"`
	TaxTotalCents int64 `json:"tax_total_cents"`
	TotalCents    int64 `json:"total_cents"`

	LineItems []LineItem `json:"line_items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BillingDocumentRequestPayload ...
type BillingDocumentRequestPayload struct {
	DocumentKind string     `json:"document_kind"`
	AccountId    string     `json:"account_id,omitempty"`
	EventId      string     `json:"event_id,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// BillingDocumentUpdateRequest ...
type BillingDocumentUpdateRequest struct {
	Status  *string    `json:"status,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// BillingDocumentList ...
type BillingDocumentList struct {
	Kind  string            `json:"kind"`
	Page  int32             `json:"page"`
	Size  int32             `json:"size"`
	Total int32             `json:"total"`
	Items []BillingDocument `json:"items"`
}

// LineItem ...
type LineItem struct {
	ObjectReference
	DocumentId    string `json:"document_id"`
	Position      int    `json:"position"`
	Description   string `json:"description"`
	Quantity      int64  `json:"quantity"`
	UnitCents     int64  `json:"unit_cents"`
	DiscountCents int64  `json:"discount_cents,omitempty"`
	TaxRateBps    int64  `json:"tax_rate_bps,omitempty"`
	AmountCents   int64  `json:"amount_cents"`
}

// LineItemRequestPayload ...
type LineItemRequestPayload struct {
	Position      int    `json:"position,omitempty"`
	Description   string `json:"description"`
	Quantity      int64  `json:"quantity"`
	UnitCents     int64  `json:"unit_cents"`
	DiscountCents int64  `json:"discount_cents,omitempty"`
	TaxRateBps    int64  `json:"tax_rate_bps,omitempty"`
}

// LineItemList ...
type LineItemList struct {
	Kind  string     `json:"kind"`
	Page  int32      `json:"page"`
	Size  int32      `json:"size"`
	Total int32      `json:"total"`
	Items []LineItem `json:"items"`
}
