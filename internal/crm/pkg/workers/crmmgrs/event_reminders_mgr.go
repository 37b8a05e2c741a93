package crmmgrs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/metrics"
	"github.com/boothworks/crm-manager/pkg/workers"
)

const (
	eventRemindersWorkerType = "event_reminders"

	// reminderLeadTime is how far ahead of the event start the reminder
	// task is created.
	reminderLeadTime = 7 * 24 * time.Hour

	// reminderDueBefore is how long before the event start the created
	// task falls due.
	reminderDueBefore = 48 * time.Hour
)

// EventRemindersManager creates a preparation task for every confirmed event
// starting soon. The reminder flag on the event keeps the task from being
// created twice.
type EventRemindersManager struct {
	workers.BaseWorker
	router *db.Router
}

// NewEventRemindersManager ...
func NewEventRemindersManager(router *db.Router) *EventRemindersManager {
	metrics.InitReconcilerMetricsForType(eventRemindersWorkerType)
	return &EventRemindersManager{
		BaseWorker: workers.BaseWorker{
			ID:         uuid.New().String(),
			WorkerType: eventRemindersWorkerType,
			Reconciler: workers.Reconciler{},
		},
		router: router,
	}
}

// Start initializes the manager to reconcile event reminders.
func (m *EventRemindersManager) Start() {
	m.StartWorker(m)
}

// Stop causes the process for reconciling event reminders to stop.
func (m *EventRemindersManager) Stop() {
	m.StopWorker(m)
}

// Reconcile ...
func (m *EventRemindersManager) Reconcile() []error {
	var encounteredErrors []error

	for _, tenantID := range m.router.TenantIDs() {
		if err := m.reconcileTenant(tenantID); err != nil {
			encounteredErrors = append(encounteredErrors, errors.Wrapf(err, "failed to reconcile event reminders for tenant %s", tenantID))
		}
	}

	return encounteredErrors
}

func (m *EventRemindersManager) reconcileTenant(tenantID string) error {
	factory, err := m.router.ForTenant(tenantID)
	if err != nil {
		return err
	}
	dbConn := factory.New()

	now := time.Now()
	var upcoming dbapi.EventList
	if err := dbConn.
		Where("tenant_id = ? AND status = ? AND reminder_task_created = ?", tenantID, constants.EventStatusConfirmed.String(), false).
		Where("start_time > ? AND start_time < ?", now, now.Add(reminderLeadTime)).
		Find(&upcoming).Error; err != nil {
		return errors.Wrap(err, "failed to list upcoming confirmed events")
	}

	for _, event := range upcoming {
		glog.V(5).Infof("creating reminder task for event %s (%s)", event.ID, event.Name)
		if err := m.createReminder(dbConn, tenantID, event); err != nil {
			return errors.Wrapf(err, "failed to create reminder task for event %s", event.ID)
		}
	}

	return nil
}

func (m *EventRemindersManager) createReminder(dbConn *gorm.DB, tenantID string, event *dbapi.Event) error {
	dueAt := event.StartTime.Add(-reminderDueBefore)
	if dueAt.Before(time.Now()) {
		dueAt = event.StartTime
	}
	task := &dbapi.Task{
		Meta:        api.Meta{ID: api.NewID()},
		TenantID:    tenantID,
		Title:       fmt.Sprintf("Prepare for event %s", event.Name),
		Description: fmt.Sprintf("Event starts %s at %s.", event.StartTime.Format("2006-01-02 15:04"), event.VenueName),
		Status:      constants.TaskStatusOpen.String(),
		DueAt:       sql.NullTime{Time: dueAt, Valid: true},
		EntityType:  "event",
		EntityID:    event.ID,
	}

	return dbConn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		result := tx.Model(&dbapi.Event{}).
			Where("id = ? AND tenant_id = ? AND reminder_task_created = ?", event.ID, tenantID, false).
			Update("reminder_task_created", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("event %s was already reminded by a concurrent run", event.ID)
		}
		return nil
	})
}
