package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
	"github.com/boothworks/crm-manager/internal/crm/pkg/presenters"
	"github.com/boothworks/crm-manager/internal/crm/pkg/services"
	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/handlers"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

type billingHandler struct {
	service services.BillingService
}

// NewBillingHandler ...
func NewBillingHandler(service services.BillingService) *billingHandler {
	return &billingHandler{service: service}
}

// Create ...
func (h billingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.BillingDocumentRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateOneOf(&payload.DocumentKind, "document_kind",
				constants.DocumentKindInvoice.String(), constants.DocumentKindQuote.String()),
			handlers.ValidateMinLength(&payload.DocumentKind, "document_kind", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			document := &dbapi.BillingDocument{
				Kind:      payload.DocumentKind,
				AccountID: payload.AccountId,
				EventID:   payload.EventId,
				IssueDate: time.Now(),
				DueDate:   nullTimeFrom(payload.DueDate),
				Currency:  payload.Currency,
				Notes:     payload.Notes,
			}
			created, svcErr := h.service.Create(r.Context(), document)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentBillingDocument(created, nil), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get serves the document with its line items.
func (h billingHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ctx := r.Context()
			id := mux.Vars(r)["id"]
			document, svcErr := h.service.Get(ctx, id)
			if svcErr != nil {
				return nil, svcErr
			}
			items, svcErr := h.service.LineItems(ctx, id)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentBillingDocument(document, items), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h billingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.BillingDocumentUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ctx := r.Context()
			id := mux.Vars(r)["id"]
			if payload.Status != nil {
				if _, svcErr := h.service.UpdateStatus(ctx, id, constants.DocumentStatus(*payload.Status)); svcErr != nil {
					return nil, svcErr
				}
			}
			fields := map[string]interface{}{}
			setNullTime(fields, "due_date", payload.DueDate)
			setString(fields, "notes", payload.Notes)
			document, svcErr := h.service.Update(ctx, id, fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentBillingDocument(document, nil), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h billingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			return nil, h.service.Delete(r.Context(), mux.Vars(r)["id"])
		},
	}
	handlers.HandleDelete(w, r, cfg, http.StatusNoContent)
}

// List ...
func (h billingHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list billing documents: %s", err.Error())
			}
			documents, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			documentList := public.BillingDocumentList{
				Kind:  "BillingDocumentList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.BillingDocument{},
			}
			for _, document := range documents {
				documentList.Items = append(documentList.Items, presenters.PresentBillingDocument(document, nil))
			}
			return documentList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

// AddLineItem ...
func (h billingHandler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	var payload public.LineItemRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			handlers.ValidateMinLength(&payload.Description, "description", handlers.MinRequiredFieldLength),
			func() *errors.ServiceError {
				if payload.Quantity <= 0 {
					return errors.Validation("quantity must be positive")
				}
				if payload.UnitCents < 0 || payload.DiscountCents < 0 || payload.TaxRateBps < 0 {
					return errors.Validation("unit_cents, discount_cents and tax_rate_bps must not be negative")
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			item := &dbapi.LineItem{
				DocumentID:    mux.Vars(r)["id"],
				Position:      payload.Position,
				Description:   payload.Description,
				Quantity:      payload.Quantity,
				UnitCents:     payload.UnitCents,
				DiscountCents: payload.DiscountCents,
				TaxRateBps:    payload.TaxRateBps,
			}
			created, svcErr := h.service.AddLineItem(r.Context(), item)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentLineItem(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// ListLineItems ...
func (h billingHandler) ListLineItems(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			items, svcErr := h.service.LineItems(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			itemList := public.LineItemList{
				Kind:  "LineItemList",
				Page:  1,
				Size:  int32(len(items)),
				Total: int32(len(items)),
				Items: []public.LineItem{},
			}
			for _, item := range items {
				itemList.Items = append(itemList.Items, presenters.PresentLineItem(item))
			}
			return itemList, nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// UpdateLineItem ...
func (h billingHandler) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	var payload public.LineItemRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			handlers.ValidatePathUUID(r, "item_id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			vars := mux.Vars(r)
			fields := map[string]interface{}{}
			if payload.Position != 0 {
				fields["position"] = payload.Position
			}
			if payload.Description != "" {
				fields["description"] = payload.Description
			}
			if payload.Quantity != 0 {
				if payload.Quantity < 0 {
					return nil, errors.Validation("quantity must be positive")
				}
				fields["quantity"] = payload.Quantity
			}
			fields["unit_cents"] = payload.UnitCents
			fields["discount_cents"] = payload.DiscountCents
			fields["tax_rate_bps"] = payload.TaxRateBps
			item, svcErr := h.service.UpdateLineItem(r.Context(), vars["id"], vars["item_id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentLineItem(item), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// RemoveLineItem ...
func (h billingHandler) RemoveLineItem(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			handlers.ValidatePathUUID(r, "item_id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			vars := mux.Vars(r)
			return nil, h.service.RemoveLineItem(r.Context(), vars["id"], vars["item_id"])
		},
	}
	handlers.HandleDelete(w, r, cfg, http.StatusNoContent)
}
