package presenters

import (
	"fmt"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
)

// PresentContact ...
func PresentContact(contact *dbapi.Contact) public.Contact {
	return public.Contact{
		ObjectReference: reference(contact.ID, KindContact, fmt.Sprintf("/contacts/%s", contact.ID)),
		AccountId:       contact.AccountID,
		FirstName:       contact.FirstName,
		LastName:        contact.LastName,
		Email:           contact.Email,
		Phone:           contact.Phone,
		Title:           contact.Title,
		Notes:           contact.Notes,
		CreatedAt:       contact.CreatedAt,
		UpdatedAt:       contact.UpdatedAt,
	}
}

// PresentAccount ...
func PresentAccount(account *dbapi.Account) public.Account {
	return public.Account{
		ObjectReference: reference(account.ID, KindAccount, fmt.Sprintf("/accounts/%s", account.ID)),
		Name:            account.Name,
		Website:         account.Website,
		Phone:           account.Phone,
		Industry:        account.Industry,
		BillingAddress:  account.BillingAddress,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}

// PresentLead ...
func PresentLead(lead *dbapi.Lead) public.Lead {
	return public.Lead{
		ObjectReference: reference(lead.ID, KindLead, fmt.Sprintf("/leads/%s", lead.ID)),
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Company:         lead.Company,
		Source:          lead.Source,
		Status:          lead.Status,
		Notes:           lead.Notes,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,

		ConvertedAccountId:     lead.ConvertedAccountID,
		ConvertedContactId:     lead.ConvertedContactID,
		ConvertedOpportunityId: lead.ConvertedOpportunityID,
	}
}

// PresentLeadConversion ...
func PresentLeadConversion(lead *dbapi.Lead) public.LeadConversionResult {
	return public.LeadConversionResult{
		LeadId:        lead.ID,
		AccountId:     lead.ConvertedAccountID,
		ContactId:     lead.ConvertedContactID,
		OpportunityId: lead.ConvertedOpportunityID,
	}
}

// PresentOpportunity ...
func PresentOpportunity(opportunity *dbapi.Opportunity) public.Opportunity {
	return public.Opportunity{
		ObjectReference: reference(opportunity.ID, KindOpportunity, fmt.Sprintf("/opportunities/%s", opportunity.ID)),
		Name:            opportunity.Name,
		AccountId:       opportunity.AccountID,
		ContactId:       opportunity.ContactID,
		Stage:           opportunity.Stage,
		AmountCents:     opportunity.AmountCents,
		Probability:     opportunity.Probability,
		CloseDate:       nullableTime(opportunity.CloseDate),
		Notes:           opportunity.Notes,
		CreatedAt:       opportunity.CreatedAt,
		UpdatedAt:       opportunity.UpdatedAt,
	}
}
