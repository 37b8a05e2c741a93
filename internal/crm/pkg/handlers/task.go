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

var taskStatuses = []string{
	constants.TaskStatusOpen.String(),
	constants.TaskStatusDone.String(),
	constants.TaskStatusCancelled.String(),
}

type taskHandler struct {
	service services.TaskService
}

// NewTaskHandler ...
func NewTaskHandler(service services.TaskService) *taskHandler {
	return &taskHandler{service: service}
}

// Create ...
func (h taskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.TaskRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Title, "title", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			task := &dbapi.Task{
				Title:       payload.Title,
				Description: payload.Description,
				DueAt:       nullTimeFrom(payload.DueAt),
				AssignedTo:  payload.AssignedTo,
				EntityType:  payload.EntityType,
				EntityID:    payload.EntityId,
			}
			created, svcErr := h.service.Create(r.Context(), task)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTask(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h taskHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			task, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTask(task), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update ...
func (h taskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.TaskUpdateRequest
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			func() *errors.ServiceError {
				if payload.Status == nil {
					return nil
				}
				return handlers.ValidateOneOf(payload.Status, "status", taskStatuses...)()
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			setString(fields, "title", payload.Title)
			setString(fields, "description", payload.Description)
			setString(fields, "status", payload.Status)
			setNullTime(fields, "due_at", payload.DueAt)
			setString(fields, "assigned_to", payload.AssignedTo)
			task, svcErr := h.service.Update(r.Context(), mux.Vars(r)["id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTask(task), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h taskHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h taskHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list tasks: %s", err.Error())
			}
			tasks, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			taskList := public.TaskList{
				Kind:  "TaskList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Task{},
			}
			for _, task := range tasks {
				taskList.Items = append(taskList.Items, presenters.PresentTask(task))
			}
			return taskList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

// CreateTemplate ...
func (h taskHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload public.TaskTemplateRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
			handlers.ValidateMinLength(&payload.Title, "title", handlers.MinRequiredFieldLength),
			func() *errors.ServiceError {
				if payload.DueInDays < 0 {
					return errors.Validation("due_in_days must not be negative")
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			template := &dbapi.TaskTemplate{
				Name:        payload.Name,
				Title:       payload.Title,
				Description: payload.Description,
				DueInDays:   payload.DueInDays,
				AssignedTo:  payload.AssignedTo,
			}
			created, svcErr := h.service.CreateTemplate(r.Context(), template)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTaskTemplate(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// GetTemplate ...
func (h taskHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			template, svcErr := h.service.GetTemplate(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTaskTemplate(template), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// UpdateTemplate ...
func (h taskHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload public.TaskTemplateRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
			func() *errors.ServiceError {
				if payload.DueInDays < 0 {
					return errors.Validation("due_in_days must not be negative")
				}
				return nil
			},
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			if payload.Name != "" {
				fields["name"] = payload.Name
			}
			if payload.Title != "" {
				fields["title"] = payload.Title
			}
			if payload.Description != "" {
				fields["description"] = payload.Description
			}
			if payload.DueInDays != 0 {
				fields["due_in_days"] = payload.DueInDays
			}
			if payload.AssignedTo != "" {
				fields["assigned_to"] = payload.AssignedTo
			}
			template, svcErr := h.service.UpdateTemplate(r.Context(), mux.Vars(r)["id"], fields)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentTaskTemplate(template), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// DeleteTemplate ...
func (h taskHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			return nil, h.service.DeleteTemplate(r.Context(), mux.Vars(r)["id"])
		},
	}
	handlers.HandleDelete(w, r, cfg, http.StatusNoContent)
}

// ListTemplates ...
func (h taskHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list task templates: %s", err.Error())
			}
			templates, paging, svcErr := h.service.ListTemplates(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			templateList := public.TaskTemplateList{
				Kind:  "TaskTemplateList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.TaskTemplate{},
			}
			for _, template := range templates {
				templateList.Items = append(templateList.Items, presenters.PresentTaskTemplate(template))
			}
			return templateList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
