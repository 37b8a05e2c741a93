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

// ContactService manages the people attached to a tenant's accounts.
type ContactService interface {
	Create(ctx context.Context, contact *dbapi.Contact) (*dbapi.Contact, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Contact, *errors.ServiceError)
	// Update applies the given column values and returns the refreshed row.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Contact, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.ContactList, *api.PagingMeta, *errors.ServiceError)
}

type contactService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewContactService ...
func NewContactService(router *db.Router, engine *workflows.Engine) ContactService {
	return &contactService{router: router, engine: engine}
}

func (s *contactService) Create(ctx context.Context, contact *dbapi.Contact) (*dbapi.Contact, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	contact.ID = api.NewID()
	contact.TenantID = tenantID
	if contact.AccountID != "" {
		var count int64
		if err := dbConn.Model(&dbapi.Account{}).Where("id = ? AND tenant_id = ?", contact.AccountID, tenantID).Count(&count).Error; err != nil {
			return nil, errors.NewWithCause(errors.ErrorGeneral, err, "Unable to verify account %s", contact.AccountID)
		}
		if count == 0 {
			return nil, errors.NotFound("account with id='%s' not found", contact.AccountID)
		}
	}
	if err := dbConn.Create(contact).Error; err != nil {
		return nil, coreServices.HandleCreateError("Contact", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, contact)
	return contact, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*dbapi.Contact, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var contact dbapi.Contact
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&contact).Error; err != nil {
		return nil, coreServices.HandleGetError("Contact", "id", id, err)
	}
	return &contact, nil
}

func (s *contactService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Contact, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var contact dbapi.Contact
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&contact).Error; err != nil {
		return nil, coreServices.HandleGetError("Contact", "id", id, err)
	}
	if len(fields) == 0 {
		return &contact, nil
	}
	if err := dbConn.Model(&contact).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Contact", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &contact)
	return &contact, nil
}

func (s *contactService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Contact{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Contact with id='%s' not found", id)
	}
	return nil
}

func (s *contactService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.ContactList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var contacts dbapi.ContactList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Contact{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "first_name", "last_name", "email")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count contacts: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&contacts).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list contacts: %s", err.Error())
	}
	pagingMeta.Size = len(contacts)
	return contacts, pagingMeta, nil
}

func (s *contactService) fire(ctx context.Context, event constants.TriggerEvent, contact *dbapi.Contact) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "contact",
		EntityID:   contact.ID,
		Table:      "contacts",
		Event:      event,
		Fields:     workflows.FieldsOf(contact),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on contact %s failed: %v", event, contact.ID, err)
	}
}
