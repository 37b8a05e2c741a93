package crmmgrs

import (
	"testing"
	"time"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/db"
)

const testTenantID = "tenant-1"

func testRouter() *db.Router {
	return db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID)
}

func overdueInvoiceReply() []map[string]interface{} {
	return []map[string]interface{}{{
		"id":        "invoice-1",
		"tenant_id": testTenantID,
		"kind":      "invoice",
		"number":    "INV-000007",
		"status":    "sent",
	}}
}

func TestOverdueInvoicesManager_Reconcile_noInvoicesPastDue(t *testing.T) {
	router := testRouter()
	mgr := NewOverdueInvoicesManager(router, workflows.NewEngine(router, time.Minute))

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "billing_documents"`).
		WithReply(nil)
	update := mocket.Catcher.NewMock().WithQuery(`UPDATE "billing_documents"`)

	errs := mgr.Reconcile()
	require.Empty(t, errs)
	assert.False(t, update.Triggered)
}

func TestOverdueInvoicesManager_Reconcile_marksInvoiceOverdue(t *testing.T) {
	router := testRouter()
	mgr := NewOverdueInvoicesManager(router, workflows.NewEngine(router, time.Minute))

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "billing_documents"`).
		WithReply(overdueInvoiceReply())
	update := mocket.Catcher.NewMock().
		WithQuery(`UPDATE "billing_documents"`).
		WithRowsNum(1)
	workflowSelect := mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(nil)

	errs := mgr.Reconcile()
	require.Empty(t, errs)
	assert.True(t, update.Triggered)
	// A workflow trigger fires for the status change.
	assert.True(t, workflowSelect.Triggered)
}

func TestOverdueInvoicesManager_Reconcile_skipsConcurrentlyChangedInvoice(t *testing.T) {
	router := testRouter()
	engine := workflows.NewEngine(router, time.Minute)
	mgr := NewOverdueInvoicesManager(router, engine)

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "billing_documents"`).
		WithReply(overdueInvoiceReply())
	// Another writer already moved the document out of sent.
	mocket.Catcher.NewMock().
		WithQuery(`UPDATE "billing_documents"`).
		WithRowsNum(0)
	workflowSelect := mocket.Catcher.NewMock().
		WithQuery(`SELECT * FROM "workflows"`).
		WithReply(nil)

	errs := mgr.Reconcile()
	require.Empty(t, errs)
	assert.False(t, workflowSelect.Triggered)
}
