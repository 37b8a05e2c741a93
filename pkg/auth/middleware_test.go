package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret" // pragma: allowlist secret

func nextHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticationMiddleware_Authenticate(t *testing.T) {
	authHelper := NewAuthHelper(testSecret)
	signed, err := authHelper.CreateSignedToken("tenant-1", "sam", false)
	require.NoError(t, err)

	otherSecretHelper := NewAuthHelper("some-other-secret")
	foreignToken, err := otherSecretHelper.CreateSignedToken("tenant-1", "sam", false)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header is rejected",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-bearer header is rejected",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret is rejected",
			authHeader: "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token is rejected",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token passes through",
			authHeader: "Bearer " + signed,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	middleware := NewAuthenticationMiddleware(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			r := httptest.NewRequest(http.MethodGet, "/api/crm/v1/contacts", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			middleware.Authenticate(nextHandler(&nextCalled)).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Result().StatusCode)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestAuthenticationMiddleware_storesTokenInContext(t *testing.T) {
	authHelper := NewAuthHelper(testSecret)
	signed, err := authHelper.CreateSignedToken("tenant-1", "sam", false)
	require.NoError(t, err)

	var gotTenant string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, svcErr := TenantIDFromContext(r.Context())
		require.Nil(t, svcErr)
		gotTenant = tenantID
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed)
	NewAuthenticationMiddleware(testSecret).Authenticate(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "tenant-1", gotTenant)
}

func TestRequireTenantMiddleware(t *testing.T) {
	authHelper := NewAuthHelper(testSecret)

	tenantToken, err := authHelper.CreateToken("tenant-1", "sam", false)
	require.NoError(t, err)
	tenantlessToken, err := authHelper.CreateToken("", "admin", true)
	require.NoError(t, err)

	tests := []struct {
		name       string
		ctx        context.Context
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "no token",
			ctx:        context.Background(),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token without tenant claim",
			ctx:        SetTokenInContext(context.Background(), tenantlessToken),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token with tenant claim",
			ctx:        SetTokenInContext(context.Background(), tenantToken),
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	middleware := NewRequireTenantMiddleware()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(tt.ctx)
			w := httptest.NewRecorder()

			middleware.RequireTenant(nextHandler(&nextCalled)).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Result().StatusCode)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestRequireAdminMiddleware(t *testing.T) {
	authHelper := NewAuthHelper(testSecret)

	adminToken, err := authHelper.CreateToken("tenant-1", "admin", true)
	require.NoError(t, err)
	memberToken, err := authHelper.CreateToken("tenant-1", "sam", false)
	require.NoError(t, err)

	middleware := NewRequireAdminMiddleware()

	nextCalled := false
	r := httptest.NewRequest(http.MethodGet, "/", nil).
		WithContext(SetTokenInContext(context.Background(), memberToken))
	w := httptest.NewRecorder()
	middleware.RequireAdmin(nextHandler(&nextCalled)).ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
	assert.False(t, nextCalled)

	r = httptest.NewRequest(http.MethodGet, "/", nil).
		WithContext(SetTokenInContext(context.Background(), adminToken))
	w = httptest.NewRecorder()
	middleware.RequireAdmin(nextHandler(&nextCalled)).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.True(t, nextCalled)
}
