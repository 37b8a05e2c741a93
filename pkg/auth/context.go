package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"

	"github.com/boothworks/crm-manager/pkg/errors"
)

type contextKey string

const contextTokenKey contextKey = "token"

// SetTokenInContext stores the parsed token in the request context.
func SetTokenInContext(ctx context.Context, token *jwt.Token) context.Context {
	return context.WithValue(ctx, contextTokenKey, token)
}

// GetClaimsFromContext returns the claims of the token stored in the
// context, or an unauthenticated error when there is none.
func GetClaimsFromContext(ctx context.Context) (CRMClaims, *errors.ServiceError) {
	token, ok := ctx.Value(contextTokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.Unauthenticated("no authentication token found in request context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.Unauthenticated("malformed claims in authentication token")
	}
	return CRMClaims(claims), nil
}

// TenantIDFromContext is a convenience accessor for the tenant claim.
func TenantIDFromContext(ctx context.Context) (string, *errors.ServiceError) {
	claims, svcErr := GetClaimsFromContext(ctx)
	if svcErr != nil {
		return "", svcErr
	}
	tenantID, err := claims.GetTenantID()
	if err != nil {
		return "", errors.Unauthenticated("token has no tenant: %s", err.Error())
	}
	return tenantID, nil
}

// UsernameFromContext returns the username claim, empty when absent.
func UsernameFromContext(ctx context.Context) string {
	claims, svcErr := GetClaimsFromContext(ctx)
	if svcErr != nil {
		return ""
	}
	username, _ := claims.GetUsername()
	return username
}
