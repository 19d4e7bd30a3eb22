package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

type tokenClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func parseToken(t *testing.T, token, secret string) *tokenClaims {
	t.Helper()
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	return claims
}

func TestIssueTokenEmbedsRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := users.Create(ctx, &domain.User{Name: "Ann", Email: "ann@mail.io", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := svc.IssueToken(ctx, "ann@mail.io")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims := parseToken(t, token, "test-secret")
	if claims.Email != "ann@mail.io" {
		t.Errorf("email claim = %q", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role claim = %q, want admin", claims.Role)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("expiry not bounded by configured lifetime")
	}
}

func TestIssueTokenForUnknownAccount(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)

	// Token issuance does not require a registered account.
	token, err := svc.IssueToken(context.Background(), "ghost@mail.io")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims := parseToken(t, token, "test-secret")
	if claims.Email != "ghost@mail.io" {
		t.Errorf("email claim = %q", claims.Email)
	}
	if claims.Role != "" {
		t.Errorf("role claim = %q, want empty", claims.Role)
	}
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret", time.Hour)
	if _, err := svc.IssueToken(context.Background(), ""); !errors.Is(err, ErrEmailRequired) {
		t.Errorf("err = %v, want ErrEmailRequired", err)
	}
}
