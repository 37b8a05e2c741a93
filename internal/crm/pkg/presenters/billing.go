package presenters

import (
	"fmt"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
)

// PresentBillingDocument ...
func PresentBillingDocument(document *dbapi.BillingDocument, items dbapi.LineItemList) public.BillingDocument {
	presented := public.BillingDocument{
		ObjectReference: reference(document.ID, KindBillingDocument, fmt.Sprintf("/billing_documents/%s", document.ID)),
		DocumentKind:    document.Kind,
		Number:          document.Number,
		Status:          document.Status,
		AccountId:       document.AccountID,
		EventId:         document.EventID,
		IssueDate:       document.IssueDate,
		DueDate:         nullableTime(document.DueDate),
		Currency:        document.Currency,
		Notes:           document.Notes,
		SubtotalCents:   document.SubtotalCents,
		TaxTotalCents:   document.TaxTotalCents,
		TotalCents:      document.TotalCents,
		CreatedAt:       document.CreatedAt,
		UpdatedAt:       document.UpdatedAt,
	}
	for _, item := range items {
		presented.LineItems = append(presented.LineItems, PresentLineItem(item))
	}
	return presented
}

// PresentLineItem ...
func PresentLineItem(item *dbapi.LineItem) public.LineItem {
	return public.LineItem{
		ObjectReference: reference(item.ID, KindLineItem,
			fmt.Sprintf("/billing_documents/%s/line_items/%s", item.DocumentID, item.ID)),
		DocumentId:    item.DocumentID,
		Position:      item.Position,
		Description:   item.Description,
		Quantity:      item.Quantity,
		UnitCents:     item.UnitCents,
		DiscountCents: item.DiscountCents,
		TaxRateBps:    item.TaxRateBps,
		AmountCents:   item.AmountCents,
	}
}
