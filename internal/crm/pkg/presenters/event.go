package presenters

import (
	"fmt"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
)

// PresentEvent ...
func PresentEvent(event *dbapi.Event) public.Event {
	return public.Event{
		ObjectReference: reference(event.ID, KindEvent, fmt.Sprintf("/events/%s", event.ID)),
		Name:            event.Name,
		EventType:       event.EventType,
		Status:          event.Status,
		AccountId:       event.AccountID,
		ContactId:       event.ContactID,
		OpportunityId:   event.OpportunityID,
		VenueName:       event.VenueName,
		VenueAddress:    event.VenueAddress,
		StartTime:       event.StartTime,
		EndTime:         event.EndTime,
		GuestCount:      event.GuestCount,
		Notes:           event.Notes,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

// PresentStaffAssignment ...
func PresentStaffAssignment(assignment *dbapi.StaffAssignment) public.StaffAssignment {
	return public.StaffAssignment{
		ObjectReference: reference(assignment.ID, KindStaffAssignment,
			fmt.Sprintf("/events/%s/assignments/%s", assignment.EventID, assignment.ID)),
		EventId:    assignment.EventID,
		StaffName:  assignment.StaffName,
		StaffEmail: assignment.StaffEmail,
		Role:       assignment.Role,
		StartTime:  assignment.StartTime,
		EndTime:    assignment.EndTime,
		CreatedAt:  assignment.CreatedAt,
		UpdatedAt:  assignment.UpdatedAt,
	}
}

// PresentInventoryItem ...
func PresentInventoryItem(item *dbapi.InventoryItem) public.InventoryItem {
	return public.InventoryItem{
		ObjectReference: reference(item.ID, KindInventoryItem, fmt.Sprintf("/inventory_items/%s", item.ID)),
		Name:            item.Name,
		SKU:             item.SKU,
		SerialNumber:    item.SerialNumber,
		Category:        item.Category,
		Status:          item.Status,
		PurchaseDate:    nullableTime(item.PurchaseDate),
		Notes:           item.Notes,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
