package services

import (
	"context"
	"fmt"

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

// BillingService manages invoices and quotes together with their line
// items. Document totals are derived from the line items inside the same
// transaction as any line item write.
type BillingService interface {
	Create(ctx context.Context, document *dbapi.BillingDocument) (*dbapi.BillingDocument, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.BillingDocument, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.BillingDocument, *errors.ServiceError)
	UpdateStatus(ctx context.Context, id string, status constants.DocumentStatus) (*dbapi.BillingDocument, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.BillingDocumentList, *api.PagingMeta, *errors.ServiceError)

	AddLineItem(ctx context.Context, item *dbapi.LineItem) (*dbapi.LineItem, *errors.ServiceError)
	LineItems(ctx context.Context, documentID string) (dbapi.LineItemList, *errors.ServiceError)
	UpdateLineItem(ctx context.Context, documentID, itemID string, fields map[string]interface{}) (*dbapi.LineItem, *errors.ServiceError)
	RemoveLineItem(ctx context.Context, documentID, itemID string) *errors.ServiceError
}

type billingService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewBillingService ...
func NewBillingService(router *db.Router, engine *workflows.Engine) BillingService {
	return &billingService{router: router, engine: engine}
}

func (s *billingService) Create(ctx context.Context, document *dbapi.BillingDocument) (*dbapi.BillingDocument, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	document.ID = api.NewID()
	document.TenantID = tenantID
	if document.Status == "" {
		document.Status = constants.DocumentStatusDraft.String()
	}
	if document.Currency == "" {
		document.Currency = "USD"
	}
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		if document.Number == "" {
			number, err := nextDocumentNumber(tx, tenantID, document.Kind)
			if err != nil {
				return err
			}
			document.Number = number
		}
		return tx.Create(document).Error
	})
	if err != nil {
		return nil, coreServices.HandleCreateError("BillingDocument", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, document)
	return document, nil
}

// nextDocumentNumber issues the next sequential number for the tenant and
// kind, e.g. INV-000042. The max lookup runs inside the caller's transaction.
func nextDocumentNumber(tx *gorm.DB, tenantID, kind string) (string, error) {
	prefix := "INV"
	if kind == constants.DocumentKindQuote.String() {
		prefix = "QUO"
	}
	var count int64
	if err := tx.Model(&dbapi.BillingDocument{}).
		Where("tenant_id = ? AND kind = ?", tenantID, kind).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, count+1), nil
}

func (s *billingService) Get(ctx context.Context, id string) (*dbapi.BillingDocument, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var document dbapi.BillingDocument
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&document).Error; err != nil {
		return nil, coreServices.HandleGetError("BillingDocument", "id", id, err)
	}
	return &document, nil
}

func (s *billingService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.BillingDocument, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var document dbapi.BillingDocument
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&document).Error; err != nil {
		return nil, coreServices.HandleGetError("BillingDocument", "id", id, err)
	}
	// Totals are derived, status has its own lifecycle and numbers are
	// immutable once issued.
	delete(fields, "status")
	delete(fields, "number")
	delete(fields, "subtotal_cents")
	delete(fields, "tax_total_cents")
	delete(fields, "total_cents")
	if len(fields) == 0 {
		return &document, nil
	}
	if err := dbConn.Model(&document).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("BillingDocument", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &document)
	return &document, nil
}

func (s *billingService) UpdateStatus(ctx context.Context, id string, status constants.DocumentStatus) (*dbapi.BillingDocument, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var document dbapi.BillingDocument
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&document).Error; err != nil {
		return nil, coreServices.HandleGetError("BillingDocument", "id", id, err)
	}
	if document.Status == status.String() {
		return &document, nil
	}
	if !constants.DocumentStatusCanTransition(constants.DocumentKind(document.Kind), constants.DocumentStatus(document.Status), status) {
		return nil, errors.InvalidStatusTransition("%s status cannot change from %s to %s", document.Kind, document.Status, status)
	}
	if err := dbConn.Model(&document).Update("status", status.String()).Error; err != nil {
		return nil, coreServices.HandleUpdateError("BillingDocument", err)
	}
	s.fire(ctx, constants.TriggerEventStatusChanged, &document)
	return &document, nil
}

func (s *billingService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.BillingDocument{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("document_id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.LineItem{}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NotFound("BillingDocument with id='%s' not found", id)
		}
		return coreServices.HandleDeleteError("BillingDocument", err)
	}
	return nil
}

func (s *billingService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.BillingDocumentList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var documents dbapi.BillingDocumentList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.BillingDocument{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "number", "kind", "status")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count billing documents: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&documents).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list billing documents: %s", err.Error())
	}
	pagingMeta.Size = len(documents)
	return documents, pagingMeta, nil
}

func (s *billingService) AddLineItem(ctx context.Context, item *dbapi.LineItem) (*dbapi.LineItem, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	document, svcErr := s.mutableDocument(dbConn, tenantID, item.DocumentID)
	if svcErr != nil {
		return nil, svcErr
	}
	item.ID = api.NewID()
	item.TenantID = tenantID
	item.ComputeAmount()
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		if item.Position == 0 {
			var maxPosition int64
			if err := tx.Model(&dbapi.LineItem{}).
				Where("document_id = ? AND tenant_id = ?", item.DocumentID, tenantID).
				Count(&maxPosition).Error; err != nil {
				return err
			}
			item.Position = int(maxPosition) + 1
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, tenantID, document.ID)
	})
	if err != nil {
		return nil, coreServices.HandleCreateError("LineItem", err)
	}
	return item, nil
}

func (s *billingService) LineItems(ctx context.Context, documentID string) (dbapi.LineItemList, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var document dbapi.BillingDocument
	if err := dbConn.Where("id = ? AND tenant_id = ?", documentID, tenantID).First(&document).Error; err != nil {
		return nil, coreServices.HandleGetError("BillingDocument", "id", documentID, err)
	}
	var items dbapi.LineItemList
	if err := dbConn.Where("document_id = ? AND tenant_id = ?", documentID, tenantID).Order("position ASC").Find(&items).Error; err != nil {
		return nil, errors.GeneralError("Unable to list line items of document %s: %s", documentID, err.Error())
	}
	return items, nil
}

func (s *billingService) UpdateLineItem(ctx context.Context, documentID, itemID string, fields map[string]interface{}) (*dbapi.LineItem, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	if _, svcErr := s.mutableDocument(dbConn, tenantID, documentID); svcErr != nil {
		return nil, svcErr
	}
	var item dbapi.LineItem
	if err := dbConn.Where("id = ? AND document_id = ? AND tenant_id = ?", itemID, documentID, tenantID).First(&item).Error; err != nil {
		return nil, coreServices.HandleGetError("LineItem", "id", itemID, err)
	}
	delete(fields, "amount_cents")
	delete(fields, "document_id")
	if len(fields) == 0 {
		return &item, nil
	}
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Updates(fields).Error; err != nil {
			return err
		}
		item.ComputeAmount()
		if err := tx.Model(&item).UpdateColumn("amount_cents", item.AmountCents).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, tenantID, documentID)
	})
	if err != nil {
		return nil, coreServices.HandleUpdateError("LineItem", err)
	}
	return &item, nil
}

func (s *billingService) RemoveLineItem(ctx context.Context, documentID, itemID string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	if _, svcErr := s.mutableDocument(dbConn, tenantID, documentID); svcErr != nil {
		return svcErr
	}
	err := dbConn.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND document_id = ? AND tenant_id = ?", itemID, documentID, tenantID).Delete(&dbapi.LineItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeTotals(tx, tenantID, documentID)
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NotFound("LineItem with id='%s' not found", itemID)
		}
		return coreServices.HandleDeleteError("LineItem", err)
	}
	return nil
}

// mutableDocument loads the document and rejects line item changes once it
// left draft.
func (s *billingService) mutableDocument(dbConn *gorm.DB, tenantID, documentID string) (*dbapi.BillingDocument, *errors.ServiceError) {
	var document dbapi.BillingDocument
	if err := dbConn.Where("id = ? AND tenant_id = ?", documentID, tenantID).First(&document).Error; err != nil {
		return nil, coreServices.HandleGetError("BillingDocument", "id", documentID, err)
	}
	if document.Status != constants.DocumentStatusDraft.String() {
		return nil, errors.BadRequest("line items of a %s document cannot change", document.Status)
	}
	return &document, nil
}

// recomputeTotals rebuilds the document's denormalized totals from its line
// items.
func recomputeTotals(tx *gorm.DB, tenantID, documentID string) error {
	var items dbapi.LineItemList
	if err := tx.Where("document_id = ? AND tenant_id = ?", documentID, tenantID).Find(&items).Error; err != nil {
		return err
	}
	var subtotal, taxTotal int64
	for _, item := range items {
		subtotal += item.AmountCents
		taxTotal += item.TaxCents()
	}
	return tx.Model(&dbapi.BillingDocument{}).
		Where("id = ? AND tenant_id = ?", documentID, tenantID).
		Updates(map[string]interface{}{
			"subtotal_cents":  subtotal,
			"tax_total_cents": taxTotal,
			"total_cents":     subtotal + taxTotal,
		}).Error
}

func (s *billingService) fire(ctx context.Context, event constants.TriggerEvent, document *dbapi.BillingDocument) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "billing_document",
		EntityID:   document.ID,
		Table:      "billing_documents",
		Event:      event,
		Fields:     workflows.FieldsOf(document),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on billing document %s failed: %v", event, document.ID, err)
	}
}
