package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// entityTypes the workflow engine can observe.
var workflowEntityTypes = []string{
	"contact", "account", "lead", "opportunity", "event", "billing_document", "ticket",
}

// WorkflowService manages automation rule definitions and exposes their
// execution history. Definition writes invalidate the engine's cache so the
// next trigger sees fresh rules.
type WorkflowService interface {
	Create(ctx context.Context, workflow *dbapi.Workflow) (*dbapi.Workflow, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Workflow, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}, actions []dbapi.WorkflowAction) (*dbapi.Workflow, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.WorkflowList, *api.PagingMeta, *errors.ServiceError)
	Executions(ctx context.Context, workflowID string, listArgs *coreServices.ListArguments) (dbapi.WorkflowExecutionList, *api.PagingMeta, *errors.ServiceError)
}

type workflowService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewWorkflowService ...
func NewWorkflowService(router *db.Router, engine *workflows.Engine) WorkflowService {
	return &workflowService{router: router, engine: engine}
}

func (s *workflowService) Create(ctx context.Context, workflow *dbapi.Workflow) (*dbapi.Workflow, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	if svcErr := validateWorkflowDefinition(workflow); svcErr != nil {
		return nil, svcErr
	}
	workflow.ID = api.NewID()
	workflow.TenantID = tenantID
	for i := range workflow.Actions {
		workflow.Actions[i].ID = api.NewID()
		workflow.Actions[i].TenantID = tenantID
		workflow.Actions[i].WorkflowID = workflow.ID
		workflow.Actions[i].Position = i + 1
	}
	if err := dbConn.Create(workflow).Error; err != nil {
		return nil, coreServices.HandleCreateError("Workflow", err)
	}
	s.engine.Invalidate(tenantID)
	return workflow, nil
}

func (s *workflowService) Get(ctx context.Context, id string) (*dbapi.Workflow, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var workflow dbapi.Workflow
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).
		Preload("Actions", func(d *gorm.DB) *gorm.DB { return d.Order("position ASC") }).
		First(&workflow).Error; err != nil {
		return nil, coreServices.HandleGetError("Workflow", "id", id, err)
	}
	return &workflow, nil
}

// Update replaces scalar fields and, when actions is non-nil, the whole
// action list.
func (s *workflowService) Update(ctx context.Context, id string, fields map[string]interface{}, actions []dbapi.WorkflowAction) (*dbapi.Workflow, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var workflow dbapi.Workflow
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&workflow).Error; err != nil {
		return nil, coreServices.HandleGetError("Workflow", "id", id, err)
	}
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&workflow).Updates(fields).Error; err != nil {
				return err
			}
		}
		if actions != nil {
			if err := tx.Where("workflow_id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.WorkflowAction{}).Error; err != nil {
				return err
			}
			for i := range actions {
				actions[i].ID = api.NewID()
				actions[i].TenantID = tenantID
				actions[i].WorkflowID = id
				actions[i].Position = i + 1
				if err := tx.Create(&actions[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, coreServices.HandleUpdateError("Workflow", err)
	}
	s.engine.Invalidate(tenantID)
	return s.Get(ctx, id)
}

func (s *workflowService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Workflow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("workflow_id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.WorkflowAction{}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NotFound("Workflow with id='%s' not found", id)
		}
		return coreServices.HandleDeleteError("Workflow", err)
	}
	s.engine.Invalidate(tenantID)
	return nil
}

func (s *workflowService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.WorkflowList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var list dbapi.WorkflowList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Workflow{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "name", "entity_type", "trigger_event")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count workflows: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Preload("Actions", func(d *gorm.DB) *gorm.DB { return d.Order("position ASC") }).
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&list).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list workflows: %s", err.Error())
	}
	pagingMeta.Size = len(list)
	return list, pagingMeta, nil
}

func (s *workflowService) Executions(ctx context.Context, workflowID string, listArgs *coreServices.ListArguments) (dbapi.WorkflowExecutionList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var workflow dbapi.Workflow
	if err := dbConn.Where("id = ? AND tenant_id = ?", workflowID, tenantID).First(&workflow).Error; err != nil {
		return nil, nil, coreServices.HandleGetError("Workflow", "id", workflowID, err)
	}

	var executions dbapi.WorkflowExecutionList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.WorkflowExecution{}).Where("workflow_id = ? AND tenant_id = ?", workflowID, tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count workflow executions: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("started_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&executions).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list workflow executions: %s", err.Error())
	}
	pagingMeta.Size = len(executions)
	return executions, pagingMeta, nil
}

func validateWorkflowDefinition(workflow *dbapi.Workflow) *errors.ServiceError {
	if !contains(workflowEntityTypes, workflow.EntityType) {
		return errors.Validation("entity_type %q is not supported", workflow.EntityType)
	}
	switch constants.TriggerEvent(workflow.TriggerEvent) {
	case constants.TriggerEventCreated, constants.TriggerEventUpdated, constants.TriggerEventStatusChanged:
	default:
		return errors.Validation("trigger_event %q is not supported", workflow.TriggerEvent)
	}
	if len(workflow.MatchFilter) > 0 {
		var filter map[string]interface{}
		if err := json.Unmarshal(workflow.MatchFilter, &filter); err != nil {
			return errors.Validation("match_filter must be a JSON object of field value pairs")
		}
	}
	if len(workflow.Actions) == 0 {
		return errors.Validation("a workflow needs at least one action")
	}
	for _, action := range workflow.Actions {
		switch constants.ActionKind(action.Kind) {
		case constants.ActionKindCreateTask, constants.ActionKindUpdateField, constants.ActionKindSendNotification:
		default:
			return errors.Validation("action kind %q is not supported", action.Kind)
		}
		if len(action.Params) > 0 && !json.Valid(action.Params) {
			return errors.Validation("action params must be valid JSON")
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
