package constants

// The transition tables below encode the entity lifecycles. An empty list
// means the status is terminal.

var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusNew:          {LeadStatusContacted, LeadStatusQualified, LeadStatusDisqualified},
	LeadStatusContacted:    {LeadStatusQualified, LeadStatusDisqualified},
	LeadStatusQualified:    {LeadStatusConverted, LeadStatusDisqualified},
	LeadStatusConverted:    {},
	LeadStatusDisqualified: {LeadStatusNew},
}

var opportunityTransitions = map[OpportunityStage][]OpportunityStage{
	OpportunityStageProspecting: {OpportunityStageProposal, OpportunityStageClosedLost},
	OpportunityStageProposal:    {OpportunityStageNegotiation, OpportunityStageClosedWon, OpportunityStageClosedLost},
	OpportunityStageNegotiation: {OpportunityStageClosedWon, OpportunityStageClosedLost},
	OpportunityStageClosedWon:   {},
	OpportunityStageClosedLost:  {},
}

var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusInquiry:    {EventStatusConfirmed, EventStatusCancelled},
	EventStatusConfirmed:  {EventStatusInProgress, EventStatusCancelled},
	EventStatusInProgress: {EventStatusCompleted},
	EventStatusCompleted:  {},
	EventStatusCancelled:  {},
}

// Invoices and quotes share draft/sent/void but diverge after sending:
// invoices settle through paid or overdue, quotes through accepted or
// declined.
var invoiceTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:   {DocumentStatusSent, DocumentStatusVoid},
	DocumentStatusSent:    {DocumentStatusPaid, DocumentStatusOverdue, DocumentStatusVoid},
	DocumentStatusOverdue: {DocumentStatusPaid, DocumentStatusVoid},
	DocumentStatusPaid:    {},
	DocumentStatusVoid:    {},
}

var quoteTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:    {DocumentStatusSent, DocumentStatusVoid},
	DocumentStatusSent:     {DocumentStatusAccepted, DocumentStatusDeclined, DocumentStatusVoid},
	DocumentStatusAccepted: {},
	DocumentStatusDeclined: {},
	DocumentStatusVoid:     {},
}

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusClosed, TicketStatusOpen},
	TicketStatusClosed:     {},
}

// LeadStatusCanTransition ...
func LeadStatusCanTransition(from, to LeadStatus) bool {
	return contains(leadTransitions[from], to)
}

// OpportunityStageCanTransition ...
func OpportunityStageCanTransition(from, to OpportunityStage) bool {
	return contains(opportunityTransitions[from], to)
}

// EventStatusCanTransition ...
func EventStatusCanTransition(from, to EventStatus) bool {
	return contains(eventTransitions[from], to)
}

// DocumentStatusCanTransition ...
func DocumentStatusCanTransition(kind DocumentKind, from, to DocumentStatus) bool {
	if kind == DocumentKindQuote {
		return contains(quoteTransitions[from], to)
	}
	return contains(invoiceTransitions[from], to)
}

// TicketStatusCanTransition ...
func TicketStatusCanTransition(from, to TicketStatus) bool {
	return contains(ticketTransitions[from], to)
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
