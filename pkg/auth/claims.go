// Package auth handles request authentication and the claims carried by the
// access token.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

const (
	tenantIDClaim = "tenant_id"
	usernameClaim = "preferred_username"
	subjectClaim  = "sub"
	adminClaim    = "is_org_admin"
)

// CRMClaims wraps the raw token claims used by the service.
type CRMClaims jwt.MapClaims

// GetTenantID returns the tenant the token is scoped to.
func (c *CRMClaims) GetTenantID() (string, error) {
	if tenantID, ok := (*c)[tenantIDClaim].(string); ok && tenantID != "" {
		return tenantID, nil
	}
	return "", fmt.Errorf("can't find %q attribute in claims", tenantIDClaim)
}

// GetUsername ...
func (c *CRMClaims) GetUsername() (string, error) {
	if username, ok := (*c)[usernameClaim].(string); ok && username != "" {
		return username, nil
	}
	return "", fmt.Errorf("can't find %q attribute in claims", usernameClaim)
}

// GetSubject returns the principal authenticated by the token.
func (c *CRMClaims) GetSubject() (string, error) {
	if sub, ok := (*c)[subjectClaim].(string); ok && sub != "" {
		return sub, nil
	}
	return "", fmt.Errorf("can't find %q attribute in claims", subjectClaim)
}

// IsOrgAdmin reports whether the token carries the org admin flag.
func (c *CRMClaims) IsOrgAdmin() bool {
	isAdmin, _ := (*c)[adminClaim].(bool)
	return isAdmin
}
