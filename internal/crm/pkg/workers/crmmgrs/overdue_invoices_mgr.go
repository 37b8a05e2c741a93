// Package crmmgrs holds the background managers reconciling tenant data.
package crmmgrs

import (
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/metrics"
	"github.com/boothworks/crm-manager/pkg/workers"
)

const overdueInvoicesWorkerType = "overdue_invoices"

// OverdueInvoicesManager marks sent invoices whose due date has passed as
// overdue, in every tenant database.
type OverdueInvoicesManager struct {
	workers.BaseWorker
	router *db.Router
	engine *workflows.Engine
}

// NewOverdueInvoicesManager ...
func NewOverdueInvoicesManager(router *db.Router, engine *workflows.Engine) *OverdueInvoicesManager {
	metrics.InitReconcilerMetricsForType(overdueInvoicesWorkerType)
	return &OverdueInvoicesManager{
		BaseWorker: workers.BaseWorker{
			ID:         uuid.New().String(),
			WorkerType: overdueInvoicesWorkerType,
			Reconciler: workers.Reconciler{},
		},
		router: router,
		engine: engine,
	}
}

// Start initializes the manager to reconcile overdue invoices.
func (m *OverdueInvoicesManager) Start() {
	m.StartWorker(m)
}

// Stop causes the process for reconciling overdue invoices to stop.
func (m *OverdueInvoicesManager) Stop() {
	m.StopWorker(m)
}

// Reconcile ...
func (m *OverdueInvoicesManager) Reconcile() []error {
	var encounteredErrors []error

	for _, tenantID := range m.router.TenantIDs() {
		if err := m.reconcileTenant(tenantID); err != nil {
			encounteredErrors = append(encounteredErrors, errors.Wrapf(err, "failed to reconcile overdue invoices for tenant %s", tenantID))
		}
	}

	return encounteredErrors
}

func (m *OverdueInvoicesManager) reconcileTenant(tenantID string) error {
	factory, err := m.router.ForTenant(tenantID)
	if err != nil {
		return err
	}
	dbConn := factory.New()

	var overdue dbapi.BillingDocumentList
	if err := dbConn.
		Where("tenant_id = ? AND kind = ? AND status = ?", tenantID, constants.DocumentKindInvoice.String(), constants.DocumentStatusSent.String()).
		Where("due_date IS NOT NULL AND due_date < ?", time.Now()).
		Find(&overdue).Error; err != nil {
		return errors.Wrap(err, "failed to list sent invoices past their due date")
	}
	if len(overdue) == 0 {
		return nil
	}
	glog.Infof("tenant %s has %d invoices past due", tenantID, len(overdue))

	for _, document := range overdue {
		result := dbConn.Model(&dbapi.BillingDocument{}).
			Where("id = ? AND tenant_id = ? AND status = ?", document.ID, tenantID, constants.DocumentStatusSent.String()).
			Update("status", constants.DocumentStatusOverdue.String())
		if result.Error != nil {
			return errors.Wrapf(result.Error, "failed to mark invoice %s overdue", document.ID)
		}
		if result.RowsAffected == 0 {
			// the document moved out of sent since the list, skip it
			continue
		}
		document.Status = constants.DocumentStatusOverdue.String()
		if svcErr := m.engine.FireForTenant(tenantID, workflows.Trigger{
			EntityType: "billing_document",
			EntityID:   document.ID,
			Table:      "billing_documents",
			Event:      constants.TriggerEventStatusChanged,
			Fields:     workflows.FieldsOf(document),
		}); svcErr != nil {
			glog.Errorf("workflow trigger for overdue invoice %s failed: %v", document.ID, svcErr)
		}
	}

	return nil
}
