package presenters

import (
	"encoding/json"
	"fmt"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
)

// PresentWorkflow ...
func PresentWorkflow(workflow *dbapi.Workflow) public.Workflow {
	presented := public.Workflow{
		ObjectReference: reference(workflow.ID, KindWorkflow, fmt.Sprintf("/workflows/%s", workflow.ID)),
		Name:            workflow.Name,
		Enabled:         workflow.Enabled,
		EntityType:      workflow.EntityType,
		TriggerEvent:    workflow.TriggerEvent,
		MatchFilter:     json.RawMessage(workflow.MatchFilter),
		CreatedAt:       workflow.CreatedAt,
		UpdatedAt:       workflow.UpdatedAt,
	}
	for _, action := range workflow.Actions {
		presented.Actions = append(presented.Actions, public.WorkflowAction{
			Id:       action.ID,
			Position: action.Position,
			Kind:     action.Kind,
			Params:   json.RawMessage(action.Params),
		})
	}
	return presented
}

// PresentWorkflowExecution ...
func PresentWorkflowExecution(execution *dbapi.WorkflowExecution) public.WorkflowExecution {
	return public.WorkflowExecution{
		ObjectReference: reference(execution.ID, KindWorkflowExecution,
			fmt.Sprintf("/workflows/%s/executions/%s", execution.WorkflowID, execution.ID)),
		WorkflowId:    execution.WorkflowID,
		EntityType:    execution.EntityType,
		EntityId:      execution.EntityID,
		TriggerEvent:  execution.TriggerEvent,
		Status:        execution.Status,
		ActionResults: json.RawMessage(execution.ActionResults),
		ErrorMessage:  execution.ErrorMessage,
		StartedAt:     execution.StartedAt,
		CompletedAt:   nullableTime(execution.CompletedAt),
	}
}

// PresentTenant ...
func PresentTenant(tenant *dbapi.Tenant) public.Tenant {
	return public.Tenant{
		ObjectReference: reference(tenant.ID, KindTenant, fmt.Sprintf("/admin/tenants/%s", tenant.ID)),
		Name:            tenant.Name,
		Subdomain:       tenant.Subdomain,
		Status:          tenant.Status,
		ContactEmail:    tenant.ContactEmail,
		Plan:            tenant.Plan,
		CreatedAt:       tenant.CreatedAt,
		UpdatedAt:       tenant.UpdatedAt,
	}
}
