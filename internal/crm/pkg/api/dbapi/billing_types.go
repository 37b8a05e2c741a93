package dbapi

import (
	"database/sql"
	"time"

	"github.com/boothworks/crm-manager/pkg/api"
)

// BillingDocument is an invoice or a quote, distinguished by Kind. Totals
// are denormalized from the line items and recomputed on every line item
// write, never trusted from the client.
type BillingDocument struct {
	api.Meta
	TenantID  string `gorm:"index"`
	Kind      string `gorm:"index"`
	Number    string `gorm:"index"`
	Status    string `gorm:"index"`
	AccountID string `gorm:"index"`
	EventID   string
	IssueDate time.Time
	DueDate   sql.NullTime
	Currency  string
	Notes     string

	SubtotalCents int64
	TaxTotalCents int64
	TotalCents    int64
}

// BillingDocumentList ...
type BillingDocumentList []*BillingDocument

// LineItem is one billable row on a billing document. AmountCents is the
// extended amount before tax: quantity * unit price - discount.
type LineItem struct {
	api.Meta
	TenantID      string `gorm:"index"`
	DocumentID    string `gorm:"index"`
	Position      int
	Description   string
	Quantity      int64
	UnitCents     int64
	DiscountCents int64
	// TaxRateBps is the tax rate in basis points, 825 means 8.25%.
	TaxRateBps  int64
	AmountCents int64
}

// LineItemList ...
type LineItemList []*LineItem

// ComputeAmount recalculates the extended amount of the line.
func (li *LineItem) ComputeAmount() {
	li.AmountCents = li.Quantity*li.UnitCents - li.DiscountCents
	if li.AmountCents < 0 {
		li.AmountCents = 0
	}
}

// TaxCents returns the tax owed on the line, rounded half up.
func (li *LineItem) TaxCents() int64 {
	return (li.AmountCents*li.TaxRateBps + 5000) / 10000
}
