package dbapi

import (
	"database/sql"

	"github.com/boothworks/crm-manager/pkg/api"
)

// Contact is a person attached to zero or one account.
type Contact struct {
	api.Meta
	TenantID  string `gorm:"index"`
	AccountID string `gorm:"index"`
	FirstName string
	LastName  string
	Email     string `gorm:"index"`
	Phone     string
	Title     string
	Notes     string
}

// ContactList ...
type ContactList []*Contact

// Account is a customer organization a tenant does business with.
type Account struct {
	api.Meta
	TenantID       string `gorm:"index"`
	Name           string `gorm:"index"`
	Website        string
	Phone          string
	Industry       string
	BillingAddress string
}

// AccountList ...
type AccountList []*Account

// Lead is an unqualified prospect. Converting it produces an account, a
// contact and an opportunity and links them back here.
type Lead struct {
	api.Meta
	TenantID  string `gorm:"index"`
	FirstName string
	LastName  string
	Email     string `gorm:"index"`
	Phone     string
	Company   string
	Source    string
	Status    string `gorm:"index"`
	Notes     string

	ConvertedAccountID     string
	ConvertedContactID     string
	ConvertedOpportunityID string
}

// LeadList ...
type LeadList []*Lead

// Opportunity is a potential deal moving through the sales pipeline.
// Amounts are stored in cents.
type Opportunity struct {
	api.Meta
	TenantID    string `gorm:"index"`
	Name        string
	AccountID   string `gorm:"index"`
	ContactID   string
	Stage       string `gorm:"index"`
	AmountCents int64
	Probability int
	CloseDate   sql.NullTime
	Notes       string
}

// OpportunityList ...
type OpportunityList []*Opportunity
