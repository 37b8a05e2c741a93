package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
	"github.com/boothworks/crm-manager/internal/crm/pkg/presenters"
	"github.com/boothworks/crm-manager/internal/crm/pkg/services"
	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/handlers"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

type workflowHandler struct {
	service services.WorkflowService
}

// NewWorkflowHandler ...
func NewWorkflowHandler(service services.WorkflowService) *workflowHandler {
	return &workflowHandler{service: service}
}

func actionsFromPayload(actions []public.WorkflowAction) []dbapi.WorkflowAction {
	converted := make([]dbapi.WorkflowAction, 0, len(actions))
	for _, action := range actions {
		converted = append(converted, dbapi.WorkflowAction{
			Kind:   action.Kind,
			Params: datatypes.JSON(action.Params),
		})
	}
	return converted
}

// Create ...
func (h workflowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload public.WorkflowRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidateMinLength(&payload.Name, "name", handlers.MinRequiredFieldLength),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			enabled := true
			if payload.Enabled != nil {
				enabled = *payload.Enabled
			}
			workflow := &dbapi.Workflow{
				Name:         payload.Name,
				Enabled:      enabled,
				EntityType:   payload.EntityType,
				TriggerEvent: payload.TriggerEvent,
				MatchFilter:  datatypes.JSON(payload.MatchFilter),
				Actions:      actionsFromPayload(payload.Actions),
			}
			created, svcErr := h.service.Create(r.Context(), workflow)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentWorkflow(created), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusCreated)
}

// Get ...
func (h workflowHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			workflow, svcErr := h.service.Get(r.Context(), mux.Vars(r)["id"])
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentWorkflow(workflow), nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}

// Update replaces the definition. Actions are replaced wholesale when the
// payload carries any.
func (h workflowHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload public.WorkflowRequestPayload
	cfg := &handlers.HandlerConfig{
		MarshalInto: &payload,
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			fields := map[string]interface{}{}
			if payload.Name != "" {
				fields["name"] = payload.Name
			}
			setBool(fields, "enabled", payload.Enabled)
			if payload.EntityType != "" {
				fields["entity_type"] = payload.EntityType
			}
			if payload.TriggerEvent != "" {
				fields["trigger_event"] = payload.TriggerEvent
			}
			if payload.MatchFilter != nil {
				fields["match_filter"] = datatypes.JSON(payload.MatchFilter)
			}
			var actions []dbapi.WorkflowAction
			if payload.Actions != nil {
				actions = actionsFromPayload(payload.Actions)
			}
			workflow, svcErr := h.service.Update(r.Context(), mux.Vars(r)["id"], fields, actions)
			if svcErr != nil {
				return nil, svcErr
			}
			return presenters.PresentWorkflow(workflow), nil
		},
	}
	handlers.Handle(w, r, cfg, http.StatusOK)
}

// Delete ...
func (h workflowHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
func (h workflowHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list workflows: %s", err.Error())
			}
			workflows, paging, svcErr := h.service.List(r.Context(), listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			workflowList := public.WorkflowList{
				Kind:  "WorkflowList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.Workflow{},
			}
			for _, workflow := range workflows {
				workflowList.Items = append(workflowList.Items, presenters.PresentWorkflow(workflow))
			}
			return workflowList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}

// ListExecutions serves the audit trail of one workflow.
func (h workflowHandler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Validate: []handlers.Validate{
			handlers.ValidatePathUUID(r, "id"),
		},
		Action: func() (interface{}, *errors.ServiceError) {
			listArgs := coreServices.NewListArguments(r.URL.Query())
			if err := listArgs.Validate(); err != nil {
				return nil, errors.MalformedRequest("Unable to list workflow executions: %s", err.Error())
			}
			executions, paging, svcErr := h.service.Executions(r.Context(), mux.Vars(r)["id"], listArgs)
			if svcErr != nil {
				return nil, svcErr
			}
			executionList := public.WorkflowExecutionList{
				Kind:  "WorkflowExecutionList",
				Page:  int32(paging.Page),
				Size:  int32(paging.Size),
				Total: int32(paging.Total),
				Items: []public.WorkflowExecution{},
			}
			for _, execution := range executions {
				executionList.Items = append(executionList.Items, presenters.PresentWorkflowExecution(execution))
			}
			return executionList, nil
		},
	}
	handlers.HandleList(w, r, cfg)
}
