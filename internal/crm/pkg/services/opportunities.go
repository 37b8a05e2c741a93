package services

import (
	"context"

	"github.com/golang/glog"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// OpportunityService manages potential deals as they move through the
// pipeline stages.
type OpportunityService interface {
	Create(ctx context.Context, opportunity *dbapi.Opportunity) (*dbapi.Opportunity, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Opportunity, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Opportunity, *errors.ServiceError)
	// UpdateStage moves the opportunity through the pipeline. Closed stages
	// are terminal.
	UpdateStage(ctx context.Context, id string, stage constants.OpportunityStage) (*dbapi.Opportunity, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.OpportunityList, *api.PagingMeta, *errors.ServiceError)
}

type opportunityService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewOpportunityService ...
func NewOpportunityService(router *db.Router, engine *workflows.Engine) OpportunityService {
	return &opportunityService{router: router, engine: engine}
}

func (s *opportunityService) Create(ctx context.Context, opportunity *dbapi.Opportunity) (*dbapi.Opportunity, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	opportunity.ID = api.NewID()
	opportunity.TenantID = tenantID
	if opportunity.Stage == "" {
		opportunity.Stage = constants.OpportunityStageProspecting.String()
	}
	if opportunity.AccountID != "" {
		var count int64
		if err := dbConn.Model(&dbapi.Account{}).Where("id = ? AND tenant_id = ?", opportunity.AccountID, tenantID).Count(&count).Error; err != nil {
			return nil, errors.NewWithCause(errors.ErrorGeneral, err, "Unable to verify account %s", opportunity.AccountID)
		}
		if count == 0 {
			return nil, errors.NotFound("account with id='%s' not found", opportunity.AccountID)
		}
	}
	if err := dbConn.Create(opportunity).Error; err != nil {
		return nil, coreServices.HandleCreateError("Opportunity", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, opportunity)
	return opportunity, nil
}

func (s *opportunityService) Get(ctx context.Context, id string) (*dbapi.Opportunity, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var opportunity dbapi.Opportunity
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&opportunity).Error; err != nil {
		return nil, coreServices.HandleGetError("Opportunity", "id", id, err)
	}
	return &opportunity, nil
}

func (s *opportunityService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Opportunity, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var opportunity dbapi.Opportunity
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&opportunity).Error; err != nil {
		return nil, coreServices.HandleGetError("Opportunity", "id", id, err)
	}
	// Stage moves through UpdateStage so pipeline rules always apply.
	delete(fields, "stage")
	if len(fields) == 0 {
		return &opportunity, nil
	}
	if err := dbConn.Model(&opportunity).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Opportunity", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &opportunity)
	return &opportunity, nil
}

func (s *opportunityService) UpdateStage(ctx context.Context, id string, stage constants.OpportunityStage) (*dbapi.Opportunity, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var opportunity dbapi.Opportunity
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&opportunity).Error; err != nil {
		return nil, coreServices.HandleGetError("Opportunity", "id", id, err)
	}
	if opportunity.Stage == stage.String() {
		return &opportunity, nil
	}
	if !constants.OpportunityStageCanTransition(constants.OpportunityStage(opportunity.Stage), stage) {
		return nil, errors.InvalidStatusTransition("opportunity stage cannot change from %s to %s", opportunity.Stage, stage)
	}
	if err := dbConn.Model(&opportunity).Update("stage", stage.String()).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Opportunity", err)
	}
	s.fire(ctx, constants.TriggerEventStatusChanged, &opportunity)
	return &opportunity, nil
}

func (s *opportunityService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Opportunity{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Opportunity", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Opportunity with id='%s' not found", id)
	}
	return nil
}

func (s *opportunityService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.OpportunityList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var opportunities dbapi.OpportunityList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Opportunity{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "name", "stage")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count opportunities: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&opportunities).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list opportunities: %s", err.Error())
	}
	pagingMeta.Size = len(opportunities)
	return opportunities, pagingMeta, nil
}

func (s *opportunityService) fire(ctx context.Context, event constants.TriggerEvent, opportunity *dbapi.Opportunity) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "opportunity",
		EntityID:   opportunity.ID,
		Table:      "opportunities",
		Event:      event,
		Fields:     workflows.FieldsOf(opportunity),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on opportunity %s failed: %v", event, opportunity.ID, err)
	}
}
