package services

import (
	"testing"
	"time"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
)

var testEventID = "event-1"

func eventReply() []map[string]interface{} {
	return []map[string]interface{}{{
		"id":        testEventID,
		"tenant_id": testTenantID,
		"name":      "Nguyen wedding",
		"status":    "confirmed",
	}}
}

func Test_eventService_Create_rejectsInvertedWindow(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &eventService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	// No insert may run when the window is rejected.
	m := mocket.Catcher.Reset().NewMock().WithQuery(`INSERT INTO "events"`)
	start := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)
	_, svcErr := k.Create(authenticatedCtx, &dbapi.Event{
		Name:      "Nguyen wedding",
		EventType: "wedding",
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, errors.ErrorValidation, svcErr.Code)
	assert.False(t, m.Triggered)
}

func Test_eventService_Assign(t *testing.T) {
	type args struct {
		assignment *dbapi.StaffAssignment
	}
	authenticatedCtx := authenticatedContext(t)
	start := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)

	buildAssignment := func(modifyFn func(assignment *dbapi.StaffAssignment)) *dbapi.StaffAssignment {
		assignment := &dbapi.StaffAssignment{
			EventID:    testEventID,
			StaffName:  "Sam Rivera",
			StaffEmail: "sam@example.com",
			Role:       "attendant",
			StartTime:  start,
			EndTime:    start.Add(4 * time.Hour),
		}
		if modifyFn != nil {
			modifyFn(assignment)
		}
		return assignment
	}

	tests := []struct {
		name     string
		args     args
		wantErr  bool
		wantCode errors.ServiceErrorCode
		setupFn  func()
	}{
		{
			name:    "error when the event does not exist",
			args:    args{assignment: buildAssignment(nil)},
			wantErr: true,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().WithQuery(`SELECT * FROM "events"`).WithReply(nil)
			},
		},
		{
			name: "error when the assignment window is inverted",
			args: args{assignment: buildAssignment(func(assignment *dbapi.StaffAssignment) {
				assignment.EndTime = assignment.StartTime.Add(-time.Hour)
			})},
			wantErr:  true,
			wantCode: errors.ErrorValidation,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().WithQuery(`SELECT * FROM "events"`).WithReply(eventReply())
			},
		},
		{
			name:     "error when the staff member is already booked",
			args:     args{assignment: buildAssignment(nil)},
			wantErr:  true,
			wantCode: errors.ErrorStaffDoubleBooked,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().WithQuery(`SELECT * FROM "events"`).WithReply(eventReply())
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(*) FROM "staff_assignments"`).
					WithReply([]map[string]interface{}{{"count": 1}})
			},
		},
		{
			name: "successful assignment",
			args: args{assignment: buildAssignment(nil)},
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().WithQuery(`SELECT * FROM "events"`).WithReply(eventReply())
				mocket.Catcher.NewMock().
					WithQuery(`SELECT count(*) FROM "staff_assignments"`).
					WithReply([]map[string]interface{}{{"count": 0}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupFn != nil {
				tt.setupFn()
			}
			k := &eventService{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
			}
			got, err := k.Assign(authenticatedCtx, tt.args.assignment)
			if (err != nil) != tt.wantErr {
				t.Errorf("Assign() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantCode != 0 {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
			if !tt.wantErr {
				require.NotNil(t, got)
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, testTenantID, got.TenantID)
			}
		})
	}
}
