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

// AccountService manages the customer organizations of a tenant.
type AccountService interface {
	Create(ctx context.Context, account *dbapi.Account) (*dbapi.Account, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Account, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Account, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.AccountList, *api.PagingMeta, *errors.ServiceError)
	// Contacts lists the contacts attached to the account.
	Contacts(ctx context.Context, id string) (dbapi.ContactList, *errors.ServiceError)
}

type accountService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewAccountService ...
func NewAccountService(router *db.Router, engine *workflows.Engine) AccountService {
	return &accountService{router: router, engine: engine}
}

func (s *accountService) Create(ctx context.Context, account *dbapi.Account) (*dbapi.Account, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	account.ID = api.NewID()
	account.TenantID = tenantID
	if err := dbConn.Create(account).Error; err != nil {
		return nil, coreServices.HandleCreateError("Account", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, account)
	return account, nil
}

func (s *accountService) Get(ctx context.Context, id string) (*dbapi.Account, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var account dbapi.Account
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&account).Error; err != nil {
		return nil, coreServices.HandleGetError("Account", "id", id, err)
	}
	return &account, nil
}

func (s *accountService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Account, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var account dbapi.Account
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&account).Error; err != nil {
		return nil, coreServices.HandleGetError("Account", "id", id, err)
	}
	if len(fields) == 0 {
		return &account, nil
	}
	if err := dbConn.Model(&account).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Account", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &account)
	return &account, nil
}

func (s *accountService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Account{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Account", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Account with id='%s' not found", id)
	}
	return nil
}

func (s *accountService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.AccountList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var accounts dbapi.AccountList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Account{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "name", "industry")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count accounts: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&accounts).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list accounts: %s", err.Error())
	}
	pagingMeta.Size = len(accounts)
	return accounts, pagingMeta, nil
}

func (s *accountService) Contacts(ctx context.Context, id string) (dbapi.ContactList, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var account dbapi.Account
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&account).Error; err != nil {
		return nil, coreServices.HandleGetError("Account", "id", id, err)
	}
	var contacts dbapi.ContactList
	if err := dbConn.Where("account_id = ? AND tenant_id = ?", id, tenantID).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, errors.GeneralError("Unable to list contacts of account %s: %s", id, err.Error())
	}
	return contacts, nil
}

func (s *accountService) fire(ctx context.Context, event constants.TriggerEvent, account *dbapi.Account) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "account",
		EntityID:   account.ID,
		Table:      "accounts",
		Event:      event,
		Fields:     workflows.FieldsOf(account),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on account %s failed: %v", event, account.ID, err)
	}
}
