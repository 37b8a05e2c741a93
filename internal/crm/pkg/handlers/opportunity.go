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

type opportunityHandler struct {
	service services.OpportunityService
}

// NewOpportunityHandler ...
func NewOpportunityHandler(service services.OpportunityService) *opportunityHandler {
	return &opportunityHandler{service: service}
}

// Create ...
func (h opportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.OpportunityRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
			func() *errors.ServiceError {
				if payload.AmountCents < 0 {
					return errors.Validation("amount_cents must not be negative")
				}
				if payload.Probability < 0 || payload.Probability > 100 {
					return errors.Validation("probability must be between 0 and 100")
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			opportunity := &dbapi.Opportunity{
				Name:        payload.Name,
				AccountID:   payload.AccountId,
				ContactID:   payload.ContactId,
				AmountCents: payload.AmountCents,
				Probability: payload.Probability,
				CloseDate:   nullTimeFrom(payload.CloseDate),
				Notes:       payload.Notes,
			}
			created, svcErr := h.service.Create(r.Context(), opportunity)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentOpportunity(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h opportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			opportunity, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentOpportunity(opportunity), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h opportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.OpportunityUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			func() *errors.ServiceError {
				if payload.Probability != nil && (*payload.Probability < 0 || *payload.Probability > 100) {
					return errors.Validation("probability must be between 0 and 100")
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ctx := r.Context()
			id := mux.Vars(r)["id"]
			if payload.Stage != nil {
				if _, svcErr := h.service.UpdateStage(ctx, id, constants.OpportunityStage(*payload.Stage)); svcErr != nil {
					return nil, svcErr
				}
			}
			fields := map[string]interface{}{}
			setString(fields, "name", payload.Name)
			setString(fields, "account_id", payload.AccountId)
			setString(fields, "contact_id", payload.ContactId)
			setInt64(fields, "amount_cents", payload.AmountCents)
			setInt(fields, "probability", payload.Probability)
			setNullTime(fields, "close_date", payload.CloseDate)
			setString(fields, "notes", payload.Notes)
			opportunity, svcErr := h.service.Update(ctx, id, fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentOpportunity(opportunity), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h opportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h opportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list opportunities: %s", err.Error())
			}
			opportunities, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			opportunityList := public.OpportunityList{
				Kind:  "OpportunityList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Opportunity{},
			}
			for _, opportunity := range opportunities {
				opportunityList.Items = append(opportunityList.Items, presenters.PresentOpportunity(opportunity))
			}
			return opportunityList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
