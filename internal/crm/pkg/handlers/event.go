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

type eventHandler struct {
	service services.EventService
}

// NewEventHandler ...
func NewEventHandler(service services.EventService) *eventHandler {
	return &eventHandler{service: service}
}

// Create ...
func (h eventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.EventRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
			handlers.ValidateMinLength(&payload.EventType, "event_type", handlers.MinRequiredFieldLength),
			func() *errors.ServiceError {
				if payload.StartTime.IsZero() || payload.EndTime.IsZero() {
					return errors.Validation("start_time and end_time are required")
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			event := &dbapi.Event{
				Name:          payload.Name,
				EventType:     payload.EventType,
				AccountID:     payload.AccountId,
				ContactID:     payload.ContactId,
				OpportunityID: payload.OpportunityId,
				VenueName:     payload.VenueName,
				VenueAddress:  payload.VenueAddress,
				StartTime:     payload.StartTime,
				EndTime:       payload.EndTime,
				GuestCount:    payload.GuestCount,
				Notes:         payload.Notes,
			}
			created, svcErr := h.service.Create(r.Context(), event)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentEvent(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h eventHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			event, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentEvent(event), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h eventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.EventUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			ctx := r.Context()
			id := mux.Vars(r)["id"]
			if payload.Status != nil {
				if _, svcErr := h.service.UpdateStatus(ctx, id, constants.EventStatus(*payload.Status)); svcErr != nil {
					return nil, svcErr
				}
			}
			fields := map[string]interface{}{}
			setString(fields, "name", payload.Name)
			setString(fields, "event_type", payload.EventType)
			setString(fields, "venue_name", payload.VenueName)
			setString(fields, "venue_address", payload.VenueAddress)
			setTime(fields, "start_time", payload.StartTime)
			setTime(fields, "end_time", payload.EndTime)
			setInt(fields, "guest_count", payload.GuestCount)
			setString(fields, "notes", payload.Notes)
			event, svcErr := h.service.Update(ctx, id, fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentEvent(event), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h eventHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h eventHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list events: %s", err.Error())
			}
			events, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			eventList := public.EventList{
				Kind:  "EventList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Event{},
			}
			for _, event := range events {
				eventList.Items = append(eventList.Items, presenters.PresentEvent(event))
			}
			return eventList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

// Assign places a staff member on the event.
func (h eventHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var payload public.StaffAssignmentRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			handlers.ValidateMinLength(&payload.StaffName, "staff_name", handlers.MinRequiredFieldLength),
			handlers.ValidateMinLength(&payload.StaffEmail, "staff_email", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			assignment := &dbapi.StaffAssignment{
				EventID:    mux.Vars(r)["id"],
				StaffName:  payload.StaffName,
				StaffEmail: payload.StaffEmail,
				Role:       payload.Role,
			}
			if payload.StartTime != nil {
				assignment.StartTime = *payload.StartTime
			}
			if payload.EndTime != nil {
				assignment.EndTime = *payload.EndTime
			}
			created, svcErr := h.service.Assign(r.Context(), assignment)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentStaffAssignment(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// ListAssignments ...
func (h eventHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			assignments, svcErr := h.service.Assignments(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			assignmentList := public.StaffAssignmentList{
				Kind:  "StaffAssignmentList",
				Page:  1,
				Size:  int32(len(assignments)),
				Total: int32(len(assignments)),
				Items: []public.StaffAssignment{},
			}
			for _, assignment := range assignments {
				assignmentList.Items = append(assignmentList.Items, presenters.PresentStaffAssignment(assignment))
			}
			return assignmentList, nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Unassign removes a staff assignment from the event.
func (h eventHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			handlers.ValidatePathUUID(r, "assignment_id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			vars := mux.Vars(r)
			return nil, h.service.Unassign(r.Context(), vars["id"], vars["assignment_id"])
		},
	}
	handlers.HandleDelete(w, r, cfg, http.StatusNoContent)
}
