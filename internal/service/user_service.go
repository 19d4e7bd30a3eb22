package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrHashingFailed     = errors.New("failed to hash password")
	ErrAlreadySubscribed = errors.New("already subscribed")
)

// RegisterInput carries the signup payload. Password is optional: social
// signups have no local credential and store no hash.
type RegisterInput struct {
	Name     string
	Email    string
	PhotoURL string
	Password string
}

// UserService manages platform accounts and the newsletter list.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	RoleByEmail(ctx context.Context, email string) (domain.Role, error)
	List(ctx context.Context) ([]domain.User, error)
	Subscribe(ctx context.Context, name, email string) (*domain.Subscriber, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriberRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriberRepository) UserService {
	return &userService{
		userRepo: userRepo,
		subRepo:  subRepo,
	}
}

// Register creates a new account with the default user role.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, errors.New("name and email cannot be empty")
	}

	user := &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		PhotoURL: input.PhotoURL,
		Role:     domain.RoleUser,
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		user.PasswordHash = string(hashed)
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique email index is authoritative for duplicates.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID
	user.PasswordHash = ""
	return user, nil
}

// Exists reports whether an account with this email is registered.
func (s *userService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// RoleByEmail returns the account's role.
func (s *userService) RoleByEmail(ctx context.Context, email string) (domain.Role, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Role, nil
}

// List returns every registered account.
func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

// Subscribe adds an email to the newsletter list. Duplicate signups are a
// conflict, not a no-op.
func (s *userService) Subscribe(ctx context.Context, name, email string) (*domain.Subscriber, error) {
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}

	sub := &domain.Subscriber{
		Name:         name,
		Email:        email,
		SubscribedAt: time.Now(),
	}
	subID, err := s.subRepo.Create(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	sub.ID = subID
	return sub, nil
}
