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

type accountHandler struct {
	service services.AccountService
}

// NewAccountHandler ...
func NewAccountHandler(service services.AccountService) *accountHandler {
	return &accountHandler{service: service}
}

// Create ...
func (h accountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.AccountRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			account := &dbapi.Account{
				Name:           payload.Name,
				Website:        payload.Website,
				Phone:          payload.Phone,
				Industry:       payload.Industry,
				BillingAddress: payload.BillingAddress,
			}
			created, svcErr := h.service.Create(r.Context(), account)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentAccount(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h accountHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			account, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentAccount(account), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h accountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.AccountUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			setString(fields, "name", payload.Name)
			setString(fields, "website", payload.Website)
			setString(fields, "phone", payload.Phone)
			setString(fields, "industry", payload.Industry)
			setString(fields, "billing_address", payload.BillingAddress)
			account, svcErr := h.service.Update(r.Context(), mux.Vars(r)["id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentAccount(account), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h accountHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h accountHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list accounts: %s", err.Error())
			}
			accounts, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			accountList := public.AccountList{
				Kind:  "AccountList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Account{},
			}
			for _, account := range accounts {
				accountList.Items = append(accountList.Items, presenters.PresentAccount(account))
			}
			return accountList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

// ListContacts serves the contacts attached to one account.
func (h accountHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			contacts, svcErr := h.service.Contacts(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			contactList := public.ContactList{
				Kind:  "ContactList",
				Page:  1,
				Size:  int32(len(contacts)),
				Total: int32(len(contacts)),
				Items: []public.Contact{},
			}
			for _, contact := range contacts {
				contactList.Items = append(contactList.Items, presenters.PresentContact(contact))
			}
			return contactList, nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}
