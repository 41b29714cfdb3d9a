// Package service provides the business logic layer (use cases).
// Each role on the platform gets its own view service; identity
// verification is shared.
package service

import (
	"fmt"
	"strconv"

	"github.com/biztech/portal-bff-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the custom claims in access tokens issued by the
// core API's auth server.
type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// TokenVerifier validates access tokens shared with the core API.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for HS256 tokens signed with the
// given shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates an access token and returns the identity
// it carries. The raw token is kept so downstream calls can act as the
// same user against the core API.
func (v *TokenVerifier) Verify(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid token"}
	}

	if claims.Type != "" && claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "invalid token type"}
	}

	userID, err := strconv.ParseInt(claims.Sub, 10, 64)
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid subject claim"}
	}

	switch claims.Role {
	case domain.RoleClient, domain.RoleAgent, domain.RoleAdmin:
	default:
		return nil, &domain.ErrUnauthorized{Message: "unknown role"}
	}

	return &domain.Identity{
		UserID: userID,
		Role:   claims.Role,
		Email:  claims.Email,
		Name:   claims.Name,
		Token:  tokenString,
	}, nil
}
