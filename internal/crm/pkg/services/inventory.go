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

// InventoryService tracks the booth hardware of a tenant.
type InventoryService interface {
	Create(ctx context.Context, item *dbapi.InventoryItem) (*dbapi.InventoryItem, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.InventoryItem, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.InventoryItem, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.InventoryItemList, *api.PagingMeta, *errors.ServiceError)
}

type inventoryService struct {
	router *db.Router
}

// NewInventoryService ...
func NewInventoryService(router *db.Router) InventoryService {
	return &inventoryService{router: router}
}

func (s *inventoryService) Create(ctx context.Context, item *dbapi.InventoryItem) (*dbapi.InventoryItem, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	item.ID = api.NewID()
	item.TenantID = tenantID
	if item.Status == "" {
		item.Status = constants.InventoryStatusAvailable.String()
	}
	if err := dbConn.Create(item).Error; err != nil {
		return nil, coreServices.HandleCreateError("InventoryItem", err)
	}
	return item, nil
}

func (s *inventoryService) Get(ctx context.Context, id string) (*dbapi.InventoryItem, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var item dbapi.InventoryItem
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error; err != nil {
		return nil, coreServices.HandleGetError("InventoryItem", "id", id, err)
	}
	return &item, nil
}

func (s *inventoryService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.InventoryItem, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var item dbapi.InventoryItem
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error; err != nil {
		return nil, coreServices.HandleGetError("InventoryItem", "id", id, err)
	}
	if len(fields) == 0 {
		return &item, nil
	}
	if err := dbConn.Model(&item).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("InventoryItem", err)
	}
	return &item, nil
}

func (s *inventoryService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.InventoryItem{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("InventoryItem", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("InventoryItem with id='%s' not found", id)
	}
	return nil
}

func (s *inventoryService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.InventoryItemList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var items dbapi.InventoryItemList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.InventoryItem{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "name", "sku", "serial_number", "category")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count inventory items: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&items).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list inventory items: %s", err.Error())
	}
	pagingMeta.Size = len(items)
	return items, pagingMeta, nil
}
