package service

import (
	"errors"
	"testing"
	"time"

	"github.com/biztech/portal-bff-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const verifierSecret = "verifier-test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func baseClaims(role string) Claims {
	return Claims{
		Sub:   "42",
		Role:  role,
		Email: "user@acme.example",
		Name:  "Test User",
		Type:  "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewTokenVerifier(verifierSecret)
	raw := signToken(t, verifierSecret, baseClaims(domain.RoleAgent))

	identity, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.UserID != 42 {
		t.Errorf("user id = %d, want 42", identity.UserID)
	}
	if identity.Role != domain.RoleAgent {
		t.Errorf("role = %q, want agent", identity.Role)
	}
	if identity.Token != raw {
		t.Error("raw token should be kept for forwarding")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewTokenVerifier(verifierSecret)
	raw := signToken(t, "some-other-secret", baseClaims(domain.RoleClient))

	if _, err := v.Verify(raw); err == nil {
		t.Fatal("expected verification to fail for a foreign signature")
	}
}

func TestVerify_Expired(t *testing.T) {
	v := NewTokenVerifier(verifierSecret)
	claims := baseClaims(domain.RoleClient)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	_, err := v.Verify(signToken(t, verifierSecret, claims))
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestVerify_RefreshTokenRejected(t *testing.T) {
	v := NewTokenVerifier(verifierSecret)
	claims := baseClaims(domain.RoleClient)
	claims.Type = "refresh"

	if _, err := v.Verify(signToken(t, verifierSecret, claims)); err == nil {
		t.Fatal("expected refresh tokens to be rejected")
	}
}

func TestVerify_UnknownRole(t *testing.T) {
	v := NewTokenVerifier(verifierSecret)
	claims := baseClaims("superuser")

	if _, err := v.Verify(signToken(t, verifierSecret, claims)); err == nil {
		t.Fatal("expected unknown roles to be rejected")
	}
}

func TestVerify_NonNumericSubject(t *testing.T) {
	v := NewTokenVerifier(verifierSecret)
	claims := baseClaims(domain.RoleClient)
	claims.Sub = "not-a-number"

	if _, err := v.Verify(signToken(t, verifierSecret, claims)); err == nil {
		t.Fatal("expected non-numeric subject to be rejected")
	}
}
