package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from LeadStatus
		to   LeadStatus
		want bool
	}{
		{"new lead can be contacted", LeadStatusNew, LeadStatusContacted, true},
		{"new lead can skip straight to qualified", LeadStatusNew, LeadStatusQualified, true},
		{"qualified lead can convert", LeadStatusQualified, LeadStatusConverted, true},
		{"contacted lead cannot convert before qualification", LeadStatusContacted, LeadStatusConverted, false},
		{"converted is terminal", LeadStatusConverted, LeadStatusNew, false},
		{"disqualified lead can be reopened", LeadStatusDisqualified, LeadStatusNew, true},
		{"unknown status allows nothing", LeadStatus("bogus"), LeadStatusNew, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeadStatusCanTransition(tt.from, tt.to))
		})
	}
}

func TestOpportunityStageCanTransition(t *testing.T) {
	assert.True(t, OpportunityStageCanTransition(OpportunityStageProspecting, OpportunityStageProposal))
	assert.True(t, OpportunityStageCanTransition(OpportunityStageProposal, OpportunityStageClosedWon))
	assert.False(t, OpportunityStageCanTransition(OpportunityStageProspecting, OpportunityStageClosedWon))
	assert.False(t, OpportunityStageCanTransition(OpportunityStageClosedWon, OpportunityStageProspecting))
	assert.False(t, OpportunityStageCanTransition(OpportunityStageClosedLost, OpportunityStageNegotiation))
}

func TestEventStatusCanTransition(t *testing.T) {
	assert.True(t, EventStatusCanTransition(EventStatusInquiry, EventStatusConfirmed))
	assert.True(t, EventStatusCanTransition(EventStatusConfirmed, EventStatusInProgress))
	assert.False(t, EventStatusCanTransition(EventStatusInProgress, EventStatusCancelled))
	assert.False(t, EventStatusCanTransition(EventStatusCompleted, EventStatusInProgress))
}

func TestDocumentStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		kind DocumentKind
		from DocumentStatus
		to   DocumentStatus
		want bool
	}{
		{"invoice can be sent", DocumentKindInvoice, DocumentStatusDraft, DocumentStatusSent, true},
		{"sent invoice can be paid", DocumentKindInvoice, DocumentStatusSent, DocumentStatusPaid, true},
		{"sent invoice can fall overdue", DocumentKindInvoice, DocumentStatusSent, DocumentStatusOverdue, true},
		{"overdue invoice can still be paid", DocumentKindInvoice, DocumentStatusOverdue, DocumentStatusPaid, true},
		{"invoice cannot be accepted", DocumentKindInvoice, DocumentStatusSent, DocumentStatusAccepted, false},
		{"paid is terminal", DocumentKindInvoice, DocumentStatusPaid, DocumentStatusVoid, false},
		{"quote can be accepted", DocumentKindQuote, DocumentStatusSent, DocumentStatusAccepted, true},
		{"quote can be declined", DocumentKindQuote, DocumentStatusSent, DocumentStatusDeclined, true},
		{"quote cannot be paid", DocumentKindQuote, DocumentStatusSent, DocumentStatusPaid, false},
		{"quote cannot fall overdue", DocumentKindQuote, DocumentStatusSent, DocumentStatusOverdue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentStatusCanTransition(tt.kind, tt.from, tt.to))
		})
	}
}

func TestTicketStatusCanTransition(t *testing.T) {
	assert.True(t, TicketStatusCanTransition(TicketStatusOpen, TicketStatusInProgress))
	assert.True(t, TicketStatusCanTransition(TicketStatusResolved, TicketStatusOpen))
	assert.False(t, TicketStatusCanTransition(TicketStatusClosed, TicketStatusOpen))
}
