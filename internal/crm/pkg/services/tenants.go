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

// TenantService manages tenant records in the application database. Unlike
// the business services it never touches a tenant data database.
type TenantService interface {
	Create(ctx context.Context, tenant *dbapi.Tenant) (*dbapi.Tenant, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Tenant, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Tenant, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TenantList, *api.PagingMeta, *errors.ServiceError)
}

type tenantService struct {
	connectionFactory *db.ConnectionFactory
}

// NewTenantService ...
func NewTenantService(connectionFactory *db.ConnectionFactory) TenantService {
	return &tenantService{connectionFactory: connectionFactory}
}

func (s *tenantService) Create(ctx context.Context, tenant *dbapi.Tenant) (*dbapi.Tenant, *errors.ServiceError) {
	dbConn := s.connectionFactory.New()
	tenant.ID = api.NewID()
	if tenant.Status == "" {
		tenant.Status = constants.TenantStatusActive.String()
	}
	if err := dbConn.Create(tenant).Error; err != nil {
		return nil, coreServices.HandleCreateError("Tenant", err)
	}
	return tenant, nil
}

func (s *tenantService) Get(ctx context.Context, id string) (*dbapi.Tenant, *errors.ServiceError) {
	dbConn := s.connectionFactory.New()
	var tenant dbapi.Tenant
	if err := dbConn.Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, coreServices.HandleGetError("Tenant", "id", id, err)
	}
	return &tenant, nil
}

func (s *tenantService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Tenant, *errors.ServiceError) {
	dbConn := s.connectionFactory.New()
	var tenant dbapi.Tenant
	if err := dbConn.Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, coreServices.HandleGetError("Tenant", "id", id, err)
	}
	if len(fields) == 0 {
		return &tenant, nil
	}
	if err := dbConn.Model(&tenant).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Tenant", err)
	}
	return &tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn := s.connectionFactory.New()
	result := dbConn.Where("id = ?", id).Delete(&dbapi.Tenant{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Tenant", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Tenant with id='%s' not found", id)
	}
	return nil
}

func (s *tenantService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TenantList, *api.PagingMeta, *errors.ServiceError) {
	dbConn := s.connectionFactory.New()
	var tenants dbapi.TenantList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Tenant{})
	query = applySearch(query, listArgs.Search, "name", "subdomain")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count tenants: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&tenants).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list tenants: %s", err.Error())
	}
	pagingMeta.Size = len(tenants)
	return tenants, pagingMeta, nil
}
