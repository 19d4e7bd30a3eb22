package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"

	"github.com/golang-jwt/jwt/v4"
)

// --- Error Definitions ---
var (
	ErrTokenGeneration = errors.New("failed to generate authentication token")
	ErrEmailRequired   = errors.New("email cannot be empty")
)

// AuthService issues the session tokens carried in the auth cookie.
type AuthService interface {
	// IssueToken signs a session token for the given email. The account does
	// not have to exist yet; signup and token issuance are separate calls.
	IssueToken(ctx context.Context, email string) (string, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the email. When a matching account exists its
// role is embedded in the claims; a missing account is not an error.
func (s *authService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}

	var role domain.Role
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		role = user.Role
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fitnesshub-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", ErrTokenGeneration
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
