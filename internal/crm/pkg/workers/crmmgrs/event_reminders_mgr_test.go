package crmmgrs

import (
	"testing"
	"time"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upcomingEventReply(start time.Time) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":                    "event-1",
		"tenant_id":             testTenantID,
		"name":                  "Nguyen wedding",
		"status":                "confirmed",
		"start_time":            start,
		"end_time":              start.Add(4 * time.Hour),
		"reminder_task_created": false,
	}}
}

func TestEventRemindersManager_Reconcile_createsTaskOnce(t *testing.T) {
	mgr := NewEventRemindersManager(testRouter())
	start := time.Now().Add(3 * 24 * time.Hour)

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "events"`).
		WithReply(upcomingEventReply(start))
	taskInsert := mocket.Catcher.NewMock().
		WithQuery(`INSERT INTO "tasks"`)
	flagUpdate := mocket.Catcher.NewMock().
		WithQuery(`UPDATE "events"`).
		WithRowsNum(1)

	errs := mgr.Reconcile()
	require.Empty(t, errs)
	assert.True(t, taskInsert.Triggered)
	assert.True(t, flagUpdate.Triggered)
}

func TestEventRemindersManager_Reconcile_concurrentReminderFails(t *testing.T) {
	mgr := NewEventRemindersManager(testRouter())
	start := time.Now().Add(3 * 24 * time.Hour)

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "events"`).
		WithReply(upcomingEventReply(start))
	// The flag was flipped by a concurrent run, the guarded update matches
	// no rows and the transaction rolls back.
	mocket.Catcher.NewMock().
		WithQuery(`UPDATE "events"`).
		WithRowsNum(0)

	errs := mgr.Reconcile()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "already reminded")
}

func TestEventRemindersManager_Reconcile_noUpcomingEvents(t *testing.T) {
	mgr := NewEventRemindersManager(testRouter())

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "events"`).
		WithReply(nil)
	taskInsert := mocket.Catcher.NewMock().
		WithQuery(`INSERT INTO "tasks"`)

	errs := mgr.Reconcile()
	require.Empty(t, errs)
	assert.False(t, taskInsert.Triggered)
}
