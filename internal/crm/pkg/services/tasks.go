package services

import (
	"context"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// TaskService manages to-dos, both user created and instantiated from
// templates by the workflow engine.
type TaskService interface {
	Create(ctx context.Context, task *dbapi.Task) (*dbapi.Task, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Task, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Task, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TaskList, *api.PagingMeta, *errors.ServiceError)

	CreateTemplate(ctx context.Context, template *dbapi.TaskTemplate) (*dbapi.TaskTemplate, *errors.ServiceError)
	GetTemplate(ctx context.Context, id string) (*dbapi.TaskTemplate, *errors.ServiceError)
	UpdateTemplate(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.TaskTemplate, *errors.ServiceError)
	DeleteTemplate(ctx context.Context, id string) *errors.ServiceError
	ListTemplates(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TaskTemplateList, *api.PagingMeta, *errors.ServiceError)
}

type taskService struct {
	router *db.Router
}

// NewTaskService ...
func NewTaskService(router *db.Router) TaskService {
	return &taskService{router: router}
}

func (s *taskService) Create(ctx context.Context, task *dbapi.Task) (*dbapi.Task, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	task.ID = api.NewID()
	task.TenantID = tenantID
	if task.Status == "" {
		task.Status = constants.TaskStatusOpen.String()
	}
	if err := dbConn.Create(task).Error; err != nil {
		return nil, coreServices.HandleCreateError("Task", err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*dbapi.Task, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var task dbapi.Task
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&task).Error; err != nil {
		return nil, coreServices.HandleGetError("Task", "id", id, err)
	}
	return &task, nil
}

func (s *taskService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Task, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var task dbapi.Task
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&task).Error; err != nil {
		return nil, coreServices.HandleGetError("Task", "id", id, err)
	}
	if len(fields) == 0 {
		return &task, nil
	}
	if err := dbConn.Model(&task).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Task", err)
	}
	return &task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Task{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Task", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Task with id='%s' not found", id)
	}
	return nil
}

func (s *taskService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TaskList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var tasks dbapi.TaskList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Task{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "title", "assigned_to", "status")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count tasks: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("due_at ASC NULLS LAST, created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&tasks).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list tasks: %s", err.Error())
	}
	pagingMeta.Size = len(tasks)
	return tasks, pagingMeta, nil
}

func (s *taskService) CreateTemplate(ctx context.Context, template *dbapi.TaskTemplate) (*dbapi.TaskTemplate, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	template.ID = api.NewID()
	template.TenantID = tenantID
	if err := dbConn.Create(template).Error; err != nil {
		return nil, coreServices.HandleCreateError("TaskTemplate", err)
	}
	return template, nil
}

func (s *taskService) GetTemplate(ctx context.Context, id string) (*dbapi.TaskTemplate, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var template dbapi.TaskTemplate
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&template).Error; err != nil {
		return nil, coreServices.HandleGetError("TaskTemplate", "id", id, err)
	}
	return &template, nil
}

func (s *taskService) UpdateTemplate(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.TaskTemplate, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var template dbapi.TaskTemplate
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&template).Error; err != nil {
		return nil, coreServices.HandleGetError("TaskTemplate", "id", id, err)
	}
	if len(fields) == 0 {
		return &template, nil
	}
	if err := dbConn.Model(&template).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("TaskTemplate", err)
	}
	return &template, nil
}

func (s *taskService) DeleteTemplate(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.TaskTemplate{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("TaskTemplate", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("TaskTemplate with id='%s' not found", id)
	}
	return nil
}

func (s *taskService) ListTemplates(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TaskTemplateList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var templates dbapi.TaskTemplateList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.TaskTemplate{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "name", "title")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count task templates: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("name ASC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&templates).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list task templates: %s", err.Error())
	}
	pagingMeta.Size = len(templates)
	return templates, pagingMeta, nil
}
