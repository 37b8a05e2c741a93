package services

import (
	"testing"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
)

var testDocumentID = "document-1"

func documentReply(kind string, status string) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":        testDocumentID,
		"tenant_id": testTenantID,
		"kind":      kind,
		"number":    "INV-000001",
		"status":    status,
		"currency":  "USD",
	}}
}

func Test_billingService_Create_issuesSequentialNumber(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &billingService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT count(*) FROM "billing_documents"`).
		WithReply([]map[string]interface{}{{"count": 41}})

	document, svcErr := k.Create(authenticatedCtx, &dbapi.BillingDocument{
		Kind:      constants.DocumentKindInvoice.String(),
		AccountID: "account-1",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, "INV-000042", document.Number)
	assert.Equal(t, constants.DocumentStatusDraft.String(), document.Status)
	assert.Equal(t, "USD", document.Currency)
	assert.Equal(t, testTenantID, document.TenantID)
}

func Test_billingService_Create_keepsExplicitNumber(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &billingService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	// The count lookup is only issued when no number was supplied.
	m := mocket.Catcher.Reset().NewMock().WithQuery(`SELECT count(*) FROM "billing_documents"`)
	document, svcErr := k.Create(authenticatedCtx, &dbapi.BillingDocument{
		Kind:   constants.DocumentKindQuote.String(),
		Number: "QUO-900001",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, "QUO-900001", document.Number)
	assert.False(t, m.Triggered)
}

func Test_billingService_UpdateStatus_kindAwareLifecycle(t *testing.T) {
	type args struct {
		status constants.DocumentStatus
	}
	authenticatedCtx := authenticatedContext(t)

	tests := []struct {
		name     string
		args     args
		wantErr  bool
		wantCode errors.ServiceErrorCode
		setupFn  func()
	}{
		{
			name: "invoice moves from sent to paid",
			args: args{status: constants.DocumentStatusPaid},
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "billing_documents"`).
					WithReply(documentReply(constants.DocumentKindInvoice.String(), constants.DocumentStatusSent.String()))
			},
		},
		{
			name:     "invoice cannot be accepted",
			args:     args{status: constants.DocumentStatusAccepted},
			wantErr:  true,
			wantCode: errors.ErrorInvalidStatusTransition,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "billing_documents"`).
					WithReply(documentReply(constants.DocumentKindInvoice.String(), constants.DocumentStatusSent.String()))
			},
		},
		{
			name: "quote moves from sent to accepted",
			args: args{status: constants.DocumentStatusAccepted},
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "billing_documents"`).
					WithReply(documentReply(constants.DocumentKindQuote.String(), constants.DocumentStatusSent.String()))
			},
		},
		{
			name:     "quote cannot be paid",
			args:     args{status: constants.DocumentStatusPaid},
			wantErr:  true,
			wantCode: errors.ErrorInvalidStatusTransition,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "billing_documents"`).
					WithReply(documentReply(constants.DocumentKindQuote.String(), constants.DocumentStatusSent.String()))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupFn != nil {
				tt.setupFn()
			}
			k := &billingService{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
			}
			_, err := k.UpdateStatus(authenticatedCtx, testDocumentID, tt.args.status)
			if (err != nil) != tt.wantErr {
				t.Errorf("UpdateStatus() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantCode != 0 {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
		})
	}
}

func Test_billingService_AddLineItem_rejectsNonDraftDocument(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &billingService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "billing_documents"`).
		WithReply(documentReply(constants.DocumentKindInvoice.String(), constants.DocumentStatusSent.String()))

	_, svcErr := k.AddLineItem(authenticatedCtx, &dbapi.LineItem{
		DocumentID:  testDocumentID,
		Description: "Premium booth, 4 hours",
		Quantity:    1,
		UnitCents:   85000,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, errors.ErrorBadRequest, svcErr.Code)
}

func Test_billingService_AddLineItem(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &billingService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "billing_documents"`).
		WithReply(documentReply(constants.DocumentKindInvoice.String(), constants.DocumentStatusDraft.String()))
	mocket.Catcher.NewMock().
		WithQuery(`SELECT count(*) FROM "line_items"`).
		WithReply([]map[string]interface{}{{"count": 2}})

	item, svcErr := k.AddLineItem(authenticatedCtx, &dbapi.LineItem{
		DocumentID:    testDocumentID,
		Description:   "Premium booth, 4 hours",
		Quantity:      2,
		UnitCents:     42500,
		DiscountCents: 5000,
		TaxRateBps:    825,
	})
	require.Nil(t, svcErr)
	assert.Equal(t, 3, item.Position)
	assert.Equal(t, int64(80000), item.AmountCents)
	assert.Equal(t, testTenantID, item.TenantID)
}
