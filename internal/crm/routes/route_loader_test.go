package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/pkg/auth"
	"github.com/boothworks/crm-manager/pkg/db"
)

const routeTestSecret = "route-test-secret" // pragma: allowlist secret

func buildTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	loader := NewRouteLoader(
		db.NewMockConnectionFactory(nil),
		auth.NewAuthenticationMiddleware(routeTestSecret),
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
	)
	mainRouter := mux.NewRouter()
	require.NoError(t, loader.AddRoutes(mainRouter))
	return mainRouter
}

func signedToken(t *testing.T, tenantID string, orgAdmin bool) string {
	t.Helper()
	signed, err := auth.NewAuthHelper(routeTestSecret).CreateSignedToken(tenantID, "route-test-user", orgAdmin)
	require.NoError(t, err)
	return signed
}

// The errors catalogue, status and metadata endpoints are reachable without
// a token, everything under the entity and admin subtrees is not.
func Test_routeLoader_publicAndProtectedRoutes(t *testing.T) {
	router := buildTestRouter(t)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{
			name:     "api metadata is public",
			path:     "/api/crm",
			wantCode: http.StatusOK,
		},
		{
			name:     "version metadata is public",
			path:     "/api/crm/v1",
			wantCode: http.StatusOK,
		},
		{
			name:     "errors catalogue is public",
			path:     "/api/crm/v1/errors",
			wantCode: http.StatusOK,
		},
		{
			name:     "errors catalogue entry is public",
			path:     "/api/crm/v1/errors/7",
			wantCode: http.StatusOK,
		},
		{
			name:     "service status is public",
			path:     "/api/crm/v1/status",
			wantCode: http.StatusOK,
		},
		{
			name:     "contacts require a token",
			path:     "/api/crm/v1/contacts",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "billing documents require a token",
			path:     "/api/crm/v1/billing_documents",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "tenantless token is rejected on entity routes",
			path:     "/api/crm/v1/contacts",
			token:    signedToken(t, "", true),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "admin routes reject non-admin tokens",
			path:     "/api/crm/v1/admin/tenants",
			token:    signedToken(t, "tenant-1", false),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin routes require a token",
			path:     "/api/crm/v1/admin/tenants",
			wantCode: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", tt.token))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
