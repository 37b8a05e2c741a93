package workflows

import (
	"testing"
	"time"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/pkg/db"
)

var testTenantID = "tenant-1"

func testEngine() *Engine {
	return NewEngine(db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID), time.Minute)
}

func workflowReply(matchFilter string) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":            "workflow-1",
		"tenant_id":     testTenantID,
		"name":          "notify on conversion",
		"enabled":       true,
		"entity_type":   "lead",
		"trigger_event": "status_changed",
		"match_filter":  matchFilter,
	}}
}

func notificationActionReply() []map[string]interface{} {
	return []map[string]interface{}{{
		"id":          "action-1",
		"tenant_id":   testTenantID,
		"workflow_id": "workflow-1",
		"position":    1,
		"kind":        "send_notification",
		"params":      `{"recipient": "ops@example.com", "subject": "Lead {{first_name}} converted", "body": "Follow up"}`,
	}}
}

func leadTrigger() Trigger {
	return Trigger{
		EntityType: "lead",
		EntityID:   "lead-1",
		Table:      "leads",
		Event:      constants.TriggerEventStatusChanged,
		Fields: map[string]interface{}{
			"id":         "lead-1",
			"first_name": "Ada",
			"status":     "converted",
		},
	}
}

func TestEngine_FireForTenant_unregisteredTenant(t *testing.T) {
	engine := testEngine()
	svcErr := engine.FireForTenant("unknown-tenant", leadTrigger())
	require.NotNil(t, svcErr)
}

func TestEngine_FireForTenant_executesMatchingWorkflow(t *testing.T) {
	engine := testEngine()

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(workflowReply(""))
	mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "workflow_actions"`).
		WithReply(notificationActionReply())
	executionInsert := mocket.Catcher.NewMock().
		WithQuery(`INSERT INTO "workflow_executions"`)
	notificationInsert := mocket.Catcher.NewMock().
		WithQuery(`INSERT INTO "notifications"`)

	svcErr := engine.FireForTenant(testTenantID, leadTrigger())
	assert.Nil(t, svcErr)
	assert.True(t, executionInsert.Triggered)
	assert.True(t, notificationInsert.Triggered)
}

func TestEngine_FireForTenant_filterMismatchSkipsExecution(t *testing.T) {
	engine := testEngine()

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(workflowReply(`{"status": "disqualified"}`))
	mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "workflow_actions"`).
		WithReply(notificationActionReply())
	executionInsert := mocket.Catcher.NewMock().
		WithQuery(`INSERT INTO "workflow_executions"`)

	svcErr := engine.FireForTenant(testTenantID, leadTrigger())
	assert.Nil(t, svcErr)
	assert.False(t, executionInsert.Triggered)
}

func TestEngine_FireForTenant_eventMismatchSkipsExecution(t *testing.T) {
	engine := testEngine()

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(workflowReply(""))
	mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "workflow_actions"`).
		WithReply(notificationActionReply())
	executionInsert := mocket.Catcher.NewMock().
		WithQuery(`INSERT INTO "workflow_executions"`)

	trigger := leadTrigger()
	trigger.Event = constants.TriggerEventCreated
	svcErr := engine.FireForTenant(testTenantID, trigger)
	assert.Nil(t, svcErr)
	assert.False(t, executionInsert.Triggered)
}

func TestEngine_definitionsAreCachedUntilInvalidated(t *testing.T) {
	engine := testEngine()

	definitionSelect := mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(nil)

	require.Nil(t, engine.FireForTenant(testTenantID, leadTrigger()))
	assert.True(t, definitionSelect.Triggered)

	// The second firing is served from the cache.
	definitionSelect = mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(nil)
	require.Nil(t, engine.FireForTenant(testTenantID, leadTrigger()))
	assert.False(t, definitionSelect.Triggered)

	// Invalidation forces a reload.
	engine.Invalidate(testTenantID)
	require.Nil(t, engine.FireForTenant(testTenantID, leadTrigger()))
	assert.True(t, definitionSelect.Triggered)
}
