package public

import "time"

// Contact ...
type Contact struct {
	ObjectReference
	AccountId string    `json:"account_id,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Title     string    `json:"title,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactRequestPayload ...
type ContactRequestPayload struct {
	AccountId string `json:"account_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Title     string `json:"title,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ContactUpdateRequest carries a partial update, nil fields are unchanged.
type ContactUpdateRequest struct {
	AccountId *string `json:"account_id,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ContactList ...
type ContactList struct {
	Kind  string    `json:"kind"`
	Page  int32     `json:"page"`
	Size  int32     `json:"size"`
	Total int32     `json:"total"`
	Items []Contact `json:"items"`
}

// Account ...
type Account struct {
	ObjectReference
	Name           string    `json:"name"`
	Website        string    `json:"website,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	BillingAddress string    `json:"billing_address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountRequestPayload ...
type AccountRequestPayload struct {
	Name           string `json:"name"`
	Website        string `json:"website,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Industry       string `json:"industry,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
}

// AccountUpdateRequest ...
type AccountUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	Website        *string `json:"website,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Industry       *string `json:"industry,omitempty"`
	BillingAddress *string `json:"billing_address,omitempty"`
}

// AccountList ...
type AccountList struct {
	Kind  string    `json:"kind"`
	Page  int32     `json:"page"`
	Size  int32     `json:"size"`
	Total int32     `json:"total"`
	Items []Account `json:"items"`
}

// Lead ...
type Lead struct {
	ObjectReference
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ConvertedAccountId     string `json:"converted_account_id,omitempty"`
	ConvertedContactId     string `json:"converted_contact_id,omitempty"`
	ConvertedOpportunityId string `json:"converted_opportunity_id,omitempty"`
}

// LeadRequestPayload ...
type LeadRequestPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Source    string `json:"source,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// LeadUpdateRequest ...
type LeadUpdateRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	Source    *string `json:"source,omitempty"`
	Status    *string `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// LeadList ...
type LeadList struct {
	Kind  string `json:"kind"`
	Page  int32  `json:"page"`
	Size  int32  `json:"size"`
	Total int32  `json:"total"`
	Items []Lead `json:"items"`
}

// LeadConversionResult references the records created by a conversion.
type LeadConversionResult struct {
	LeadId        string `json:"lead_id"`
	AccountId     string `json:"account_id"`
	ContactId     string `json:"contact_id"`
	OpportunityId string `json:"opportunity_id"`
}

// Opportunity ...
type Opportunity struct {
	ObjectReference
	Name        string     `json:"name"`
	AccountId   string     `json:"account_id,omitempty"`
	ContactId   string     `json:"contact_id,omitempty"`
	Stage       string     `json:"stage"`
	AmountCents int64      `json:"amount_cents"`
	Probability int        `json:"probability"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OpportunityRequestPayload ...
type OpportunityRequestPayload struct {
	Name        string     `json:"name"`
	AccountId   string     `json:"account_id,omitempty"`
	ContactId   string     `json:"contact_id,omitempty"`
	AmountCents int64      `json:"amount_cents,omitempty"`
	Probability int        `json:"probability,omitempty"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// OpportunityUpdateRequest ...
type OpportunityUpdateRequest struct {
	Name        *string    `json:"name,omitempty"`
	AccountId   *string    `json:"account_id,omitempty"`
	ContactId   *string    `json:"contact_id,omitempty"`
	Stage       *string    `json:"stage,omitempty"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	Probability *int       `json:"probability,omitempty"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// OpportunityList ...
type OpportunityList struct {
	Kind  string        `json:"kind"`
	Page  int32         `json:"page"`
	Size  int32         `json:"size"`
	Total int32         `json:"total"`
	Items []Opportunity `json:"items"`
}
