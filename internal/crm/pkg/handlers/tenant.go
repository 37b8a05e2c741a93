package handlers

import (
	"net/http"
	"regexp"

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

var validSubdomain = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

var tenantStatuses = []string{
	constants.TenantStatusActive.String(),
	constants.TenantStatusSuspended.String(),
}

type tenantHandler struct {
	service services.TenantService
}

// NewTenantHandler ...
func NewTenantHandler(service services.TenantService) *tenantHandler {
	return &tenantHandler{service: service}
}

// Create ...
func (h tenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.TenantRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
			func() *errors.ServiceError {
				if !validSubdomain.MatchString(payload.Subdomain) {
					return errors.Validation("subdomain %q is not a valid DNS label", payload.Subdomain)
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			tenant := &dbapi.Tenant{
				Name:         payload.Name,
				Subdomain:    payload.Subdomain,
				ContactEmail: payload.ContactEmail,
				Plan:         payload.Plan,
			}
			created, svcErr := h.service.Create(r.Context(), tenant)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTenant(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h tenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			tenant, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTenant(tenant), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h tenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.TenantUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			func() *errors.ServiceError {
				if payload.Status == nil {
					return nil
				}
				return handlers.ValidateOneOf(payload.Status, "status", tenantStatuses...)()
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			setString(fields, "name", payload.Name)
			setString(fields, "status", payload.Status)
			setString(fields, "contact_email", payload.ContactEmail)
			setString(fields, "plan", payload.Plan)
			tenant, svcErr := h.service.Update(r.Context(), mux.Vars(r)["id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTenant(tenant), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h tenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h tenantHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list tenants: %s", err.Error())
			}
			tenants, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			tenantList := public.TenantList{
				Kind:  "TenantList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Tenant{},
			}
			for _, tenant := range tenants {
				tenantList.Items = append(tenantList.Items, presenters.PresentTenant(tenant))
			}
			return tenantList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
