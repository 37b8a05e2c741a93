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

var ticketPriorities = []string{
	constants.TicketPriorityLow.String(),
	constants.TicketPriorityMedium.String(),
	constants.TicketPriorityHigh.String(),
	constants.TicketPriorityUrgent.String(),
}

type ticketHandler struct {
	service services.TicketService
}

// NewTicketHandler ...
func NewTicketHandler(service services.TicketService) *ticketHandler {
	return &ticketHandler{service: service}
}

// Create ...
func (h ticketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.TicketRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Subject, "subject", handlers.MinRequiredFieldLength),
			handlers.ValidateOneOf(&payload.Priority, "priority", ticketPriorities...),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ticket := &dbapi.Ticket{
				Subject:        payload.Subject,
				Description:    payload.Description,
				Priority:       payload.Priority,
				RequesterEmail: payload.RequesterEmail,
				AccountID:      payload.AccountId,
				EventID:        payload.EventId,
				AssignedTo:     payload.AssignedTo,
			}
			created, svcErr := h.service.Create(r.Context(), ticket)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTicket(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h ticketHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ticket, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTicket(ticket), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h ticketHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.TicketUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			func() *errors.ServiceError {
				if payload.Priority == nil {
					return nil
				}
				return handlers.ValidateOneOf(payload.Priority, "priority", ticketPriorities...)()
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ctx := r.Context()
			id := mux.Vars(r)["id"]
			if payload.Status != nil {
				if _, svcErr := h.service.UpdateStatus(ctx, id, constants.TicketStatus(*payload.Status)); svcErr != nil {
					return nil, svcErr
				}
			}
			fields := map[string]interface{}{}
			setString(fields, "subject", payload.Subject)
			setString(fields, "description", payload.Description)
			setString(fields, "priority", payload.Priority)
			setString(fields, "assigned_to", payload.AssignedTo)
			ticket, svcErr := h.service.Update(ctx, id, fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTicket(ticket), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h ticketHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h ticketHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list tickets: %s", err.Error())
			}
			tickets, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			ticketList := public.TicketList{
				Kind:  "TicketList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Ticket{},
			}
			for _, ticket := range tickets {
				ticketList.Items = append(ticketList.Items, presenters.PresentTicket(ticket))
			}
			return ticketList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
