package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// AuthHelper creates signed tokens, primarily for tests and local tooling.
type AuthHelper struct {
	secret []byte
}

// NewAuthHelper ...
func NewAuthHelper(secret string) *AuthHelper {
	return &AuthHelper{secret: []byte(secret)}
}

// CreateSignedToken builds an HMAC signed token with the service claims.
func (h *AuthHelper) CreateSignedToken(tenantID, username string, orgAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		tenantIDClaim: tenantID,
		usernameClaim: username,
		subjectClaim:  username,
		adminClaim:    orgAdmin,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return signed, nil
}

// CreateToken returns the parsed, validated form of a signed token. Useful
// for seeding a request context in tests.
func (h *AuthHelper) CreateToken(tenantID, username string, orgAdmin bool) (*jwt.Token, error) {
	signed, err := h.CreateSignedToken(tenantID, username, orgAdmin)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return h.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parsing token")
	}
	return token, nil
}
