package services

import (
	"testing"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
)

var testLeadID = "lead-1"

func buildLead(modifyFn func(lead *dbapi.Lead)) *dbapi.Lead {
	lead := &dbapi.Lead{
		Meta:      api.Meta{ID: testLeadID},
		TenantID:  testTenantID,
		FirstName: "Ada",
		LastName:  "Nguyen",
		Email:     "ada@example.com",
		Company:   "Nguyen Weddings",
		Status:    constants.LeadStatusQualified.String(),
	}
	if modifyFn != nil {
		modifyFn(lead)
	}
	return lead
}

func leadReply(lead *dbapi.Lead) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":         lead.ID,
		"tenant_id":  lead.TenantID,
		"first_name": lead.FirstName,
		"last_name":  lead.LastName,
		"email":      lead.Email,
		"company":    lead.Company,
		"status":     lead.Status,
	}}
}

func Test_leadService_Convert(t *testing.T) {
	type args struct {
		id string
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
			name:    "error when lead does not exist",
			args:    args{id: "missing"},
			wantErr: true,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().WithQuery(`SELECT * FROM "leads"`).WithReply(nil)
			},
		},
		{
			name:     "error when lead was already converted",
			args:     args{id: testLeadID},
			wantErr:  true,
			wantCode: errors.ErrorLeadAlreadyConverted,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "leads"`).
					WithReply(leadReply(buildLead(func(lead *dbapi.Lead) {
						lead.Status = constants.LeadStatusConverted.String()
					})))
			},
		},
		{
			name:     "error when lead is disqualified",
			args:     args{id: testLeadID},
			wantErr:  true,
			wantCode: errors.ErrorInvalidStatusTransition,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "leads"`).
					WithReply(leadReply(buildLead(func(lead *dbapi.Lead) {
						lead.Status = constants.LeadStatusDisqualified.String()
					})))
			},
		},
		{
			name: "successful conversion of a qualified lead",
			args: args{id: testLeadID},
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().
					WithQuery(`SELECT * FROM "leads"`).
					WithReply(leadReply(buildLead(nil)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupFn != nil {
				tt.setupFn()
			}
			k := &leadService{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
			}
			got, err := k.Convert(authenticatedCtx, tt.args.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Convert() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantCode != 0 {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
			if !tt.wantErr {
				require.NotNil(t, got)
				assert.Equal(t, testLeadID, got.ID)
			}
		})
	}
}

func Test_leadService_UpdateStatus(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &leadService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	// A backwards move through the lifecycle is rejected before any update runs.
	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "leads"`).
		WithReply(leadReply(buildLead(func(lead *dbapi.Lead) {
			lead.Status = constants.LeadStatusConverted.String()
		})))
	_, svcErr := k.UpdateStatus(authenticatedCtx, testLeadID, constants.LeadStatusNew)
	require.NotNil(t, svcErr)
	assert.Equal(t, errors.ErrorInvalidStatusTransition, svcErr.Code)

	// Setting the current status again is a no-op.
	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "leads"`).
		WithReply(leadReply(buildLead(nil)))
	got, svcErr := k.UpdateStatus(authenticatedCtx, testLeadID, constants.LeadStatusQualified)
	assert.Nil(t, svcErr)
	require.NotNil(t, got)
	assert.Equal(t, constants.LeadStatusQualified.String(), got.Status)
}

func Test_leadService_Update_ignoresStatusField(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &leadService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	mocket.Catcher.Reset().NewMock().
		WithQuery(`SELECT * FROM "leads"`).
		WithReply(leadReply(buildLead(nil)))

	// With status stripped no columns remain, so no UPDATE may run.
	m := mocket.Catcher.NewMock().WithQuery(`UPDATE "leads"`)
	got, svcErr := k.Update(authenticatedCtx, testLeadID, map[string]interface{}{
		"status": constants.LeadStatusConverted.String(),
	})
	assert.Nil(t, svcErr)
	require.NotNil(t, got)
	assert.Equal(t, constants.LeadStatusQualified.String(), got.Status)
	assert.False(t, m.Triggered)
}
