// Package workflows executes stored automation rules against entity
// lifecycle events. Execution is synchronous with the triggering write and
// every firing leaves an audit record.
package workflows

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/glog"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/auth"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/metrics"
)

// DefaultDefinitionTTL bounds how stale the cached workflow definitions of a
// tenant may get before they are reloaded.
const DefaultDefinitionTTL = 30 * time.Second

// Trigger describes a lifecycle event on one entity.
type Trigger struct {
	// EntityType is the workflow-facing entity name, e.g. "lead".
	EntityType string
	EntityID   string
	// Table is the entity's table, targeted by update_field actions.
	Table string
	Event constants.TriggerEvent
	// Fields holds the entity's column values for filter matching and
	// notification templating. Build it with FieldsOf.
	Fields map[string]interface{}
}

type actionResult struct {
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

// Engine matches triggers against each tenant's enabled workflows and runs
// the matching ones.
type Engine struct {
	router *db.Router
	cache  *gocache.Cache
}

// NewEngine ...
func NewEngine(router *db.Router, definitionTTL time.Duration) *Engine {
	if definitionTTL <= 0 {
		definitionTTL = DefaultDefinitionTTL
	}
	return &Engine{
		router: router,
		cache:  gocache.New(definitionTTL, 2*definitionTTL),
	}
}

// Invalidate drops the cached definitions of a tenant. Call it after any
// workflow create, update or delete so the next trigger sees fresh rules.
func (e *Engine) Invalidate(tenantID string) {
	e.cache.Delete(tenantID)
}

// Fire runs every enabled workflow of the calling tenant that matches the
// trigger. Action failures are recorded on the execution row and do not roll
// back the write that raised the trigger; the returned error covers only
// failures to load definitions.
func (e *Engine) Fire(ctx context.Context, trigger Trigger) *errors.ServiceError {
	tenantID, svcErr := auth.TenantIDFromContext(ctx)
	if svcErr != nil {
		return svcErr
	}
	return e.FireForTenant(tenantID, trigger)
}

// FireForTenant is Fire for callers outside a request, the background
// workers name the tenant explicitly.
func (e *Engine) FireForTenant(tenantID string, trigger Trigger) *errors.ServiceError {
	factory, err := e.router.ForTenant(tenantID)
	if err != nil {
		return errors.TenantNotRegistered("no data database registered for tenant %s", tenantID)
	}
	dbConn := factory.New()

	definitions, svcErr := e.definitions(dbConn, tenantID)
	if svcErr != nil {
		return svcErr
	}
	for _, workflow := range definitions {
		if !workflow.Enabled || workflow.EntityType != trigger.EntityType ||
			workflow.TriggerEvent != string(trigger.Event) {
			continue
		}
		if !e.filterMatches(workflow, trigger) {
			continue
		}
		e.execute(dbConn, tenantID, workflow, trigger)
	}
	return nil
}

func (e *Engine) definitions(dbConn *gorm.DB, tenantID string) (dbapi.WorkflowList, *errors.ServiceError) {
	if cached, ok := e.cache.Get(tenantID); ok {
		return cached.(dbapi.WorkflowList), nil
	}
	var workflows dbapi.WorkflowList
	if err := dbConn.
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Preload("Actions", func(d *gorm.DB) *gorm.DB { return d.Order("position ASC") }).
		Find(&workflows).Error; err != nil {
		return nil, errors.NewWithCause(errors.ErrorGeneral, err, "Unable to load workflows for tenant %s", tenantID)
	}
	e.cache.SetDefault(tenantID, workflows)
	return workflows, nil
}

func (e *Engine) filterMatches(workflow *dbapi.Workflow, trigger Trigger) bool {
	if len(workflow.MatchFilter) == 0 {
		return true
	}
	var filter map[string]interface{}
	if err := json.Unmarshal(workflow.MatchFilter, &filter); err != nil {
		glog.Errorf("workflow %s has an unreadable match filter, skipping: %v", workflow.ID, err)
		return false
	}
	return matchesFilter(filter, trigger.Fields)
}

// execute runs the workflow's actions in order and writes the audit record.
// The first failing action stops the run; earlier action effects are kept.
func (e *Engine) execute(dbConn *gorm.DB, tenantID string, workflow *dbapi.Workflow, trigger Trigger) {
	execution := &dbapi.WorkflowExecution{
		Meta:         api.Meta{ID: api.NewID()},
		TenantID:     tenantID,
		WorkflowID:   workflow.ID,
		EntityType:   trigger.EntityType,
		EntityID:     trigger.EntityID,
		TriggerEvent: string(trigger.Event),
		Status:       constants.ExecutionStatusRunning.String(),
		StartedAt:    time.Now(),
	}
	if err := dbConn.Create(execution).Error; err != nil {
		glog.Errorf("unable to record execution of workflow %s: %v", workflow.ID, err)
		return
	}

	results := make([]actionResult, 0, len(workflow.Actions))
	status := constants.ExecutionStatusSucceeded
	var failure string
	for _, action := range workflow.Actions {
		result := actionResult{Position: action.Position, Kind: action.Kind, Status: "succeeded"}
		if err := e.runAction(dbConn, tenantID, action, trigger); err != nil {
			result.Status = "failed"
			result.Detail = err.Error()
			results = append(results, result)
			status = constants.ExecutionStatusFailed
			failure = fmt.Sprintf("action %d (%s): %s", action.Position, action.Kind, err.Error())
			break
		}
		results = append(results, result)
	}

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		glog.Errorf("unable to serialize action results for execution %s: %v", execution.ID, err)
	}
	updates := map[string]interface{}{
		"status":         status.String(),
		"action_results": resultsJSON,
		"error_message":  failure,
		"completed_at":   sql.NullTime{Time: time.Now(), Valid: true},
	}
	if err := dbConn.Model(&dbapi.WorkflowExecution{}).Where("id = ?", execution.ID).Updates(updates).Error; err != nil {
		glog.Errorf("unable to finish execution record %s: %v", execution.ID, err)
	}
	metrics.IncWorkflowExecution(tenantID, string(trigger.Event), status.String())
}

func (e *Engine) runAction(dbConn *gorm.DB, tenantID string, action dbapi.WorkflowAction, trigger Trigger) error {
	switch constants.ActionKind(action.Kind) {
	case constants.ActionKindCreateTask:
		return e.runCreateTask(dbConn, tenantID, action, trigger)
	case constants.ActionKindUpdateField:
		return e.runUpdateField(dbConn, tenantID, action, trigger)
	case constants.ActionKindSendNotification:
		return e.runSendNotification(dbConn, tenantID, action, trigger)
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

type createTaskParams struct {
	TemplateID string `json:"template_id"`
	// Title overrides the template title when set.
	Title string `json:"title,omitempty"`
}

func (e *Engine) runCreateTask(dbConn *gorm.DB, tenantID string, action dbapi.WorkflowAction, trigger Trigger) error {
	var params createTaskParams
	if err := json.Unmarshal(action.Params, &params); err != nil {
		return fmt.Errorf("unreadable create_task params: %w", err)
	}
	if params.TemplateID == "" {
		return fmt.Errorf("create_task params missing template_id")
	}
	var template dbapi.TaskTemplate
	if err := dbConn.Where("id = ? AND tenant_id = ?", params.TemplateID, tenantID).First(&template).Error; err != nil {
		return fmt.Errorf("task template %s: %w", params.TemplateID, err)
	}
	task := &dbapi.Task{
		Meta:        api.Meta{ID: api.NewID()},
		TenantID:    tenantID,
		Title:       template.Title,
		Description: template.Description,
		Status:      constants.TaskStatusOpen.String(),
		AssignedTo:  template.AssignedTo,
		EntityType:  trigger.EntityType,
		EntityID:    trigger.EntityID,
		TemplateID:  template.ID,
	}
	if params.Title != "" {
		task.Title = params.Title
	}
	if template.DueInDays > 0 {
		task.DueAt = sql.NullTime{Time: time.Now().AddDate(0, 0, template.DueInDays), Valid: true}
	}
	if err := dbConn.Create(task).Error; err != nil {
		return fmt.Errorf("unable to create task from template %s: %w", template.ID, err)
	}
	return nil
}

type updateFieldParams struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

func (e *Engine) runUpdateField(dbConn *gorm.DB, tenantID string, action dbapi.WorkflowAction, trigger Trigger) error {
	var params updateFieldParams
	if err := json.Unmarshal(action.Params, &params); err != nil {
		return fmt.Errorf("unreadable update_field params: %w", err)
	}
	if !validColumnName.MatchString(params.Field) {
		return fmt.Errorf("update_field refers to invalid field %q", params.Field)
	}
	if protectedColumns[params.Field] {
		return fmt.Errorf("update_field may not modify field %q", params.Field)
	}
	result := dbConn.Table(trigger.Table).
		Where("id = ? AND tenant_id = ?", trigger.EntityID, tenantID).
		UpdateColumn(params.Field, params.Value)
	if result.Error != nil {
		return fmt.Errorf("unable to update %s.%s: %w", trigger.Table, params.Field, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s no longer exists", trigger.EntityType, trigger.EntityID)
	}
	return nil
}

type sendNotificationParams struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func (e *Engine) runSendNotification(dbConn *gorm.DB, tenantID string, action dbapi.WorkflowAction, trigger Trigger) error {
	var params sendNotificationParams
	if err := json.Unmarshal(action.Params, &params); err != nil {
		return fmt.Errorf("unreadable send_notification params: %w", err)
	}
	recipient := renderTemplate(params.Recipient, trigger.Fields)
	if recipient == "" {
		return fmt.Errorf("send_notification resolved an empty recipient")
	}
	notification := &dbapi.Notification{
		Meta:           api.Meta{ID: api.NewID()},
		TenantID:       tenantID,
		RecipientEmail: recipient,
		Subject:        renderTemplate(params.Subject, trigger.Fields),
		Body:           renderTemplate(params.Body, trigger.Fields),
		Status:         "pending",
		EntityType:     trigger.EntityType,
		EntityID:       trigger.EntityID,
	}
	if err := dbConn.Create(notification).Error; err != nil {
		return fmt.Errorf("unable to record notification: %w", err)
	}
	return nil
}
