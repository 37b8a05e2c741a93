package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
	"github.com/boothworks/crm-manager/internal/crm/pkg/presenters"
	"github.com/boothworks/crm-manager/internal/crm/pkg/services"
	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/handlers"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

type contactHandler struct {
	service services.ContactService
}

// NewContactHandler ...
func NewContactHandler(service services.ContactService) *contactHandler {
	return &contactHandler{service: service}
}

// Create ...
func (h contactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.ContactRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.FirstName, "first_name", handlers.MinRequiredFieldLength),
			handlers.ValidateMinLength(&payload.LastName, "last_name", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			contact := &dbapi.Contact{
				AccountID: payload.AccountId,
				FirstName: payload.FirstName,
				LastName:  payload.LastName,
				Email:     payload.Email,
				Phone:     payload.Phone,
				Title:     payload.Title,
				Notes:     payload.Notes,
			}
			created, svcErr := h.service.Create(r.Context(), contact)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentContact(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h contactHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			contact, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentContact(contact), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h contactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.ContactUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			setString(fields, "account_id", payload.AccountId)
			setString(fields, "first_name", payload.FirstName)
			setString(fields, "last_name", payload.LastName)
			setString(fields, "email", payload.Email)
			setString(fields, "phone", payload.Phone)
			setString(fields, "title", payload.Title)
			setString(fields, "notes", payload.Notes)
			contact, svcErr := h.service.Update(r.Context(), mux.Vars(r)["id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentContact(contact), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h contactHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h contactHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list contacts: %s", err.Error())
			}
			contacts, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			contactList := public.ContactList{
				Kind:  "ContactList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Contact{},
			}
			for _, contact := range contacts {
				contactList.Items = append(contactList.Items, presenters.PresentContact(contact))
			}
			return contactList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
