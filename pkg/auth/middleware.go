package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/shared"
)

// AuthenticationMiddleware parses and verifies the bearer token on each
// request and stores it in the request context. Verification uses a shared
// HMAC secret, the hosted identity provider signs tenant tokens with it.
type AuthenticationMiddleware struct {
	secret []byte
}

// NewAuthenticationMiddleware ...
func NewAuthenticationMiddleware(secret string) *AuthenticationMiddleware {
	return &AuthenticationMiddleware{secret: []byte(secret)}
}

// Authenticate is the mux middleware func.
func (m *AuthenticationMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, svcErr := bearerToken(r)
		if svcErr != nil {
			shared.HandleError(r, w, svcErr)
			return
		}

		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil {
			shared.HandleError(r, w, errors.Unauthenticated("invalid token: %s", err.Error()))
			return
		}

		next.ServeHTTP(w, r.WithContext(SetTokenInContext(r.Context(), token)))
	})
}

// RequireTenantMiddleware rejects requests whose token carries no tenant
// claim. Mounted on all business-data routes.
type RequireTenantMiddleware struct{}

// NewRequireTenantMiddleware ...
func NewRequireTenantMiddleware() *RequireTenantMiddleware {
	return &RequireTenantMiddleware{}
}

// RequireTenant ...
func (m *RequireTenantMiddleware) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, svcErr := TenantIDFromContext(r.Context()); svcErr != nil {
			shared.HandleError(r, w, svcErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminMiddleware rejects requests without the org admin claim.
// Mounted on the tenant administration routes.
type RequireAdminMiddleware struct{}

// NewRequireAdminMiddleware ...
func NewRequireAdminMiddleware() *RequireAdminMiddleware {
	return &RequireAdminMiddleware{}
}

// RequireAdmin ...
func (m *RequireAdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, svcErr := GetClaimsFromContext(r.Context())
		if svcErr != nil {
			shared.HandleError(r, w, svcErr)
			return
		}
		if !claims.IsOrgAdmin() {
			shared.HandleError(r, w, errors.Unauthorized("account is not authorized to administer tenants"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, *errors.ServiceError) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthenticated("request has no Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.Unauthenticated("Authorization header is not a bearer token")
	}
	return parts[1], nil
}
