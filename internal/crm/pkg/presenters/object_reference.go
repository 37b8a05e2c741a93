// Package presenters converts stored records into the resources served by
// the API.
package presenters

import (
	"database/sql"
	"time"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
)

// Kind identifiers of the served resource types.
const (
	KindContact           = "Contact"
	KindAccount           = "Account"
	KindLead              = "Lead"
	KindOpportunity       = "Opportunity"
	KindEvent             = "Event"
	KindStaffAssignment   = "StaffAssignment"
	KindInventoryItem     = "InventoryItem"
	KindBillingDocument   = "BillingDocument"
	KindLineItem          = "LineItem"
	KindTicket            = "Ticket"
	KindTask              = "Task"
	KindTaskTemplate      = "TaskTemplate"
	KindWorkflow          = "Workflow"
	KindWorkflowExecution = "WorkflowExecution"
	KindTenant            = "Tenant"
	KindError             = "Error"

	// BasePath prefixes every served href.
	BasePath = "/api/crm/v1"
)

func reference(id, kind, path string) public.ObjectReference {
	return public.ObjectReference{
		Id:   id,
		Kind: kind,
		Href: BasePath + path,
	}
}

// nullableTime converts a sql.NullTime column to the pointer form used on
// the wire.
func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
