package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang/glog"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// LeadService manages unqualified prospects and their conversion into
// accounts, contacts and opportunities.
type LeadService interface {
	Create(ctx context.Context, lead *dbapi.Lead) (*dbapi.Lead, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Lead, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Lead, *errors.ServiceError)
	// UpdateStatus moves the lead through its lifecycle, rejecting
	// transitions the lifecycle does not allow.
	UpdateStatus(ctx context.Context, id string, status constants.LeadStatus) (*dbapi.Lead, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.LeadList, *api.PagingMeta, *errors.ServiceError)
	// Convert creates an account, a contact and an opportunity from the lead
	// in a single transaction and marks the lead converted.
	Convert(ctx context.Context, id string) (*dbapi.Lead, *errors.ServiceError)
}

type leadService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewLeadService ...
func NewLeadService(router *db.Router, engine *workflows.Engine) LeadService {
	return &leadService{router: router, engine: engine}
}

func (s *leadService) Create(ctx context.Context, lead *dbapi.Lead) (*dbapi.Lead, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	lead.ID = api.NewID()
	lead.TenantID = tenantID
	if lead.Status == "" {
		lead.Status = constants.LeadStatusNew.String()
	}
	if err := dbConn.Create(lead).Error; err != nil {
		return nil, coreServices.HandleCreateError("Lead", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, lead)
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, id string) (*dbapi.Lead, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var lead dbapi.Lead
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&lead).Error; err != nil {
		return nil, coreServices.HandleGetError("Lead", "id", id, err)
	}
	return &lead, nil
}

func (s *leadService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Lead, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var lead dbapi.Lead
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&lead).Error; err != nil {
		return nil, coreServices.HandleGetError("Lead", "id", id, err)
	}
	// Status moves through UpdateStatus so lifecycle rules always apply.
	delete(fields, "status")
	if len(fields) == 0 {
		return &lead, nil
	}
	if err := dbConn.Model(&lead).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Lead", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &lead)
	return &lead, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, id string, status constants.LeadStatus) (*dbapi.Lead, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var lead dbapi.Lead
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&lead).Error; err != nil {
		return nil, coreServices.HandleGetError("Lead", "id", id, err)
	}
	if lead.Status == status.String() {
		return &lead, nil
	}
	if !constants.LeadStatusCanTransition(constants.LeadStatus(lead.Status), status) {
		return nil, errors.InvalidStatusTransition("lead status cannot change from %s to %s", lead.Status, status)
	}
	if err := dbConn.Model(&lead).Update("status", status.String()).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Lead", err)
	}
	s.fire(ctx, constants.TriggerEventStatusChanged, &lead)
	return &lead, nil
}

func (s *leadService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Lead{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Lead", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Lead with id='%s' not found", id)
	}
	return nil
}

func (s *leadService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.LeadList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var leads dbapi.LeadList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Lead{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "first_name", "last_name", "email", "company")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count leads: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&leads).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list leads: %s", err.Error())
	}
	pagingMeta.Size = len(leads)
	return leads, pagingMeta, nil
}

func (s *leadService) Convert(ctx context.Context, id string) (*dbapi.Lead, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var lead dbapi.Lead
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&lead).Error; err != nil {
		return nil, coreServices.HandleGetError("Lead", "id", id, err)
	}
	if lead.Status == constants.LeadStatusConverted.String() {
		return nil, errors.LeadAlreadyConverted("Lead with id='%s' was already converted", id)
	}
	if !constants.LeadStatusCanTransition(constants.LeadStatus(lead.Status), constants.LeadStatusConverted) {
		return nil, errors.InvalidStatusTransition("lead status cannot change from %s to %s", lead.Status, constants.LeadStatusConverted)
	}

	account := &dbapi.Account{
		Meta:     api.Meta{ID: api.NewID()},
		TenantID: tenantID,
		Name:     accountNameForLead(&lead),
	}
	contact := &dbapi.Contact{
		Meta:      api.Meta{ID: api.NewID()},
		TenantID:  tenantID,
		AccountID: account.ID,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Email:     lead.Email,
		Phone:     lead.Phone,
	}
	opportunity := &dbapi.Opportunity{
		Meta:      api.Meta{ID: api.NewID()},
		TenantID:  tenantID,
		AccountID: account.ID,
		ContactID: contact.ID,
		Name:      fmt.Sprintf("%s opportunity", account.Name),
		Stage:     constants.OpportunityStageProspecting.String(),
	}

	err := dbConn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		if err := tx.Create(opportunity).Error; err != nil {
			return err
		}
		return tx.Model(&lead).Updates(map[string]interface{}{
			"status":                   constants.LeadStatusConverted.String(),
			"converted_account_id":     account.ID,
			"converted_contact_id":     contact.ID,
			"converted_opportunity_id": opportunity.ID,
		}).Error
	})
	if err != nil {
		return nil, errors.NewWithCause(errors.ErrorGeneral, err, "Unable to convert lead %s", id)
	}
	s.fire(ctx, constants.TriggerEventStatusChanged, &lead)
	return &lead, nil
}

// accountNameForLead prefers the lead's company and falls back to the
// person's name.
func accountNameForLead(lead *dbapi.Lead) string {
	if lead.Company != "" {
		return lead.Company
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", lead.FirstName, lead.LastName))
}

func (s *leadService) fire(ctx context.Context, event constants.TriggerEvent, lead *dbapi.Lead) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "lead",
		EntityID:   lead.ID,
		Table:      "leads",
		Event:      event,
		Fields:     workflows.FieldsOf(lead),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on lead %s failed: %v", event, lead.ID, err)
	}
}
