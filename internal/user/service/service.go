package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/security"
	"storefront/internal/user/domain"
	"storefront/internal/user/repository"
)

// Sentinel errors for the user service; handlers map them to HTTP statuses.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// Service owns user creation and password verification. Password hashing
// policy lives here; nothing outside this package sees a plaintext password.
type Service struct {
	users  repository.Repository
	hasher *security.Hasher
}

// NewService returns a user service backed by the given repository and hasher.
func NewService(users repository.Repository, hasher *security.Hasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Create registers a new user with the given email, name, and password.
// Returns ErrEmailAlreadyRegistered when the email is taken.
func (s *Service) Create(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidatePassword returns the user for the given credentials, or nil when the
// email is unknown or the password does not match. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) ValidatePassword(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if err := s.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
		return nil, nil
	}
	return u, nil
}

// GetByID returns the user for id, or nil if not found.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
