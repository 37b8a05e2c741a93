package services

import (
	"context"
	"reflect"
	"testing"

	mocket "github.com/selvatico/go-mocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/auth"
	"github.com/boothworks/crm-manager/pkg/db"
)

const testTokenSecret = "test-token-secret" // pragma: allowlist secret

var (
	testTenantID  = "tenant-1"
	testUser      = "test-user"
	testContactID = "contact-1"
)

// authenticatedContext returns a context carrying a token for the test tenant.
func authenticatedContext(t *testing.T) context.Context {
	t.Helper()
	authHelper := auth.NewAuthHelper(testTokenSecret)
	token, err := authHelper.CreateToken(testTenantID, testUser, false)
	require.NoError(t, err, "failed to create token")
	return auth.SetTokenInContext(context.TODO(), token)
}

func buildContact(modifyFn func(contact *dbapi.Contact)) *dbapi.Contact {
	contact := &dbapi.Contact{
		Meta:      api.Meta{ID: testContactID},
		TenantID:  testTenantID,
		FirstName: "Ada",
		LastName:  "Nguyen",
		Email:     "ada@example.com",
	}
	if modifyFn != nil {
		modifyFn(contact)
	}
	return contact
}

func contactReply(contact *dbapi.Contact) []map[string]interface{} {
	return []map[string]interface{}{{
		"id":         contact.ID,
		"tenant_id":  contact.TenantID,
		"first_name": contact.FirstName,
		"last_name":  contact.LastName,
		"email":      contact.Email,
	}}
}

// This test should act as a "golden" test to describe the general testing approach taken in the service, for people
// onboarding into development of the service.
func Test_contactService_Get(t *testing.T) {
	// fields are the variables on the struct that we're testing, in this case contactService
	type fields struct {
		router *db.Router
	}
	// args are the variables that will be provided to the function we're testing, in this case it's just the id we
	// pass to contactService.Get
	type args struct {
		ctx context.Context
		id  string
	}

	authenticatedCtx := authenticatedContext(t)

	// we define tests as list of structs that contain inputs and expected outputs
	// this means we can execute the same logic on each test struct, and makes adding new tests simple as we only need
	// to provide a new struct to the list instead of defining an entirely new test
	tests := []struct {
		// name is just a description of the test
		name   string
		fields fields
		args   args
		// want (there can be more than one) is the outputs that we expect, they can be compared after the test
		// function has been executed
		want *dbapi.Contact
		// wantErr is similar to want, but instead of testing the actual returned error, we're just testing than any
		// error has been returned
		wantErr bool
		// setupFn will be called before each test and allows mocket setup to be performed
		setupFn func()
	}{
		// below is a single test case, we define each of the fields that we care about from the anonymous test struct
		// above
		{
			name: "error when context carries no token",
			fields: fields{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
			},
			args: args{
				ctx: context.TODO(),
				id:  testContactID,
			},
			wantErr: true,
		},
		{
			name: "error when the tenant has no registered data database",
			fields: fields{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), "some-other-tenant"),
			},
			args: args{
				ctx: authenticatedCtx,
				id:  testContactID,
			},
			wantErr: true,
		},
		{
			name: "error when sql where query fails",
			fields: fields{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
			},
			args: args{
				ctx: authenticatedCtx,
				id:  testContactID,
			},
			wantErr: true,
			setupFn: func() {
				mocket.Catcher.Reset().NewMock().WithQuery("SELECT").WithQueryException()
			},
		},
		{
			name: "successful output",
			fields: fields{
				router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
			},
			args: args{
				ctx: authenticatedCtx,
				id:  testContactID,
			},
			want: buildContact(nil),
			setupFn: func() {
				mocket.Catcher.Reset().
					NewMock().
					WithQuery(`SELECT * FROM "contacts" WHERE id = $1 AND tenant_id = $2 AND "contacts"."deleted_at" IS NULL ORDER BY "contacts"."id" LIMIT $3`).
					WithArgs(testContactID, testTenantID, int64(1)).
					WithReply(contactReply(buildContact(nil)))
			},
		},
	}
	// we loop through each test case defined in the list above and start a new test invocation, using the testing
	// t.Run function
	for _, tt := range tests {
		// tt now contains our test case, we can use the 'fields' to construct the struct that we want to test and the
		// 'args' to pass to the function we want to test
		t.Run(tt.name, func(t *testing.T) {
			// invoke any pre-req logic if needed
			if tt.setupFn != nil {
				tt.setupFn()
			}
			// we're testing the contactService struct, so use the 'fields' to create one
			k := &contactService{
				router: tt.fields.router,
			}
			// we're testing the contactService.Get function so use the 'args' to provide arguments to the function
			got, err := k.Get(tt.args.ctx, tt.args.id)
			// in our test case we used 'wantErr' to define if we expect and error to be returned from the function or
			// not, now we test that expectation
			if (err != nil) != tt.wantErr {
				t.Errorf("Get() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			// in our test case we used 'want' to define the output dbapi.Contact that we expect to be returned, we
			// can use reflect.DeepEqual to compare the actual struct with the expected struct
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_contactService_Delete(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &contactService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	m := mocket.Catcher.Reset().
		NewMock().
		WithQuery(`UPDATE "contacts" SET "deleted_at"=$1 WHERE (id = $2 AND tenant_id = $3) AND "contacts"."deleted_at" IS NULL`).
		WithRowsNum(1).
		OneTime()
	svcErr := k.Delete(authenticatedCtx, testContactID)
	assert.Nil(t, svcErr)
	assert.True(t, m.Triggered)

	mocket.Catcher.Reset().
		NewMock().
		WithQuery(`UPDATE "contacts"`).
		WithRowsNum(0).
		OneTime()
	svcErr = k.Delete(authenticatedCtx, "missing")
	require.NotNil(t, svcErr)
	assert.True(t, svcErr.Is404())
}

func Test_contactService_Create_unknownAccount(t *testing.T) {
	authenticatedCtx := authenticatedContext(t)
	k := &contactService{
		router: db.NewMockRouter(db.NewMockConnectionFactory(nil), testTenantID),
	}

	mocket.Catcher.Reset().
		NewMock().
		WithQuery(`SELECT count(*) FROM "accounts"`).
		WithReply([]map[string]interface{}{{"count": 0}})

	contact := buildContact(func(contact *dbapi.Contact) {
		contact.AccountID = "missing-account"
	})
	_, svcErr := k.Create(authenticatedCtx, contact)
	require.NotNil(t, svcErr)
	assert.True(t, svcErr.Is404())
}
