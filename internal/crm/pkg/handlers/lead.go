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

type leadHandler struct {
	service services.LeadService
}

// NewLeadHandler ...
func NewLeadHandler(service services.LeadService) *leadHandler {
	return &leadHandler{service: service}
}

// Create ...
func (h leadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.LeadRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.FirstName, "first_name", handlers.MinRequiredFieldLength),
			handlers.ValidateMinLength(&payload.LastName, "last_name", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			lead := &dbapi.Lead{
				FirstName: payload.FirstName,
				LastName:  payload.LastName,
				Email:     payload.Email,
				Phone:     payload.Phone,
				Company:   payload.Company,
				Source:    payload.Source,
				Notes:     payload.Notes,
			}
			created, svcErr := h.service.Create(r.Context(), lead)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentLead(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h leadHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			lead, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentLead(lead), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update applies a partial update. A status change goes through the
// lifecycle check before any other field is touched.
func (h leadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.LeadUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ctx := r.Context()
			id := mux.Vars(r)["id"]
			if payload.Status != nil {
				if _, svcErr := h.service.UpdateStatus(ctx, id, constants.LeadStatus(*payload.Status)); svcErr != nil {
					return nil, svcErr
				}
			}
			fields := map[string]interface{}{}
			setString(fields, "first_name", payload.FirstName)
			setString(fields, "last_name", payload.LastName)
			setString(fields, "email", payload.Email)
			setString(fields, "phone", payload.Phone)
			setString(fields, "company", payload.Company)
			setString(fields, "source", payload.Source)
			setString(fields, "notes", payload.Notes)
			lead, svcErr := h.service.Update(ctx, id, fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentLead(lead), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h leadHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h leadHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list leads: %s", err.Error())
			}
			leads, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			leadList := public.LeadList{
				Kind:  "LeadList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Lead{},
			}
			for _, lead := range leads {
				leadList.Items = append(leadList.Items, presenters.PresentLead(lead))
			}
			return leadList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

// Convert turns a qualified lead into an account, contact and opportunity.
func (h leadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			lead, svcErr := h.service.Convert(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentLeadConversion(lead), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}
