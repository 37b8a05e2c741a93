package crmmgrs

import (
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/metrics"
	"github.com/boothworks/crm-manager/pkg/workers"
)

const executionRetentionWorkerType = "execution_retention"

// DefaultExecutionRetention is how long workflow execution records are kept.
const DefaultExecutionRetention = 30 * 24 * time.Hour

// ExecutionRetentionManager prunes old workflow execution records from every
// tenant database.
type ExecutionRetentionManager struct {
	workers.BaseWorker
	router    *db.Router
	retention time.Duration
}

// NewExecutionRetentionManager ...
func NewExecutionRetentionManager(router *db.Router, retention time.Duration) *ExecutionRetentionManager {
	metrics.InitReconcilerMetricsForType(executionRetentionWorkerType)
	if retention <= 0 {
		retention = DefaultExecutionRetention
	}
	return &ExecutionRetentionManager{
		BaseWorker: workers.BaseWorker{
			ID:         uuid.New().String(),
			WorkerType: executionRetentionWorkerType,
			Reconciler: workers.Reconciler{},
		},
		router:    router,
		retention: retention,
	}
}

// Start initializes the manager to prune execution records.
func (m *ExecutionRetentionManager) Start() {
	m.StartWorker(m)
}

// Stop causes the process for pruning execution records to stop.
func (m *ExecutionRetentionManager) Stop() {
	m.StopWorker(m)
}

// Reconcile ...
func (m *ExecutionRetentionManager) Reconcile() []error {
	var encounteredErrors []error

	cutoff := time.Now().Add(-m.retention)
	for _, tenantID := range m.router.TenantIDs() {
		factory, err := m.router.ForTenant(tenantID)
		if err != nil {
			encounteredErrors = append(encounteredErrors, errors.Wrapf(err, "failed to resolve data database for tenant %s", tenantID))
			continue
		}
		result := factory.New().Unscoped().
			Where("tenant_id = ? AND started_at < ?", tenantID, cutoff).
			Delete(&dbapi.WorkflowExecution{})
		if result.Error != nil {
			encounteredErrors = append(encounteredErrors, errors.Wrapf(result.Error, "failed to prune execution records for tenant %s", tenantID))
			continue
		}
		if result.RowsAffected > 0 {
			glog.Infof("pruned %d workflow execution records for tenant %s", result.RowsAffected, tenantID)
		}
	}

	return encounteredErrors
}
