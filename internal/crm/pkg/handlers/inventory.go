package handlers

import (
	"net/http"

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

var inventoryStatuses = []string{
	constants.InventoryStatusAvailable.String(),
	constants.InventoryStatusReserved.String(),
	constants.InventoryStatusDeployed.String(),
	constants.InventoryStatusMaintenance.String(),
	constants.InventoryStatusRetired.String(),
}

type inventoryHandler struct {
	service services.InventoryService
}

// NewInventoryHandler ...
func NewInventoryHandler(service services.InventoryService) *inventoryHandler {
	return &inventoryHandler{service: service}
}

// Create ...
func (h inventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.InventoryItemRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			item := &dbapi.InventoryItem{
				Name:         payload.Name,
				SKU:          payload.SKU,
				SerialNumber: payload.SerialNumber,
				Category:     payload.Category,
				PurchaseDate: nullTimeFrom(payload.PurchaseDate),
				Notes:        payload.Notes,
			}
			created, svcErr := h.service.Create(r.Context(), item)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentInventoryItem(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h inventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			item, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentInventoryItem(item), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h inventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.InventoryItemUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			func() *errors.ServiceError {
				if payload.Status == nil {
					return nil
				}
				return handlers.ValidateOneOf(payload.Status, "status", inventoryStatuses...)()
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			setString(fields, "name", payload.Name)
			setString(fields, "sku", payload.SKU)
			setString(fields, "serial_number", payload.SerialNumber)
			setString(fields, "category", payload.Category)
			setString(fields, "status", payload.Status)
			setNullTime(fields, "purchase_date", payload.PurchaseDate)
			setString(fields, "notes", payload.Notes)
			item, svcErr := h.service.Update(r.Context(), mux.Vars(r)["id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentInventoryItem(item), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h inventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h inventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list inventory items: %s", err.Error())
			}
			items, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			itemList := public.InventoryItemList{
				Kind:  "InventoryItemList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.InventoryItem{},
			}
			for _, item := range items {
				itemList.Items = append(itemList.Items, presenters.PresentInventoryItem(item))
			}
			return itemList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
