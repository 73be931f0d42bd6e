package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"chatstore/internal/auth"
	"chatstore/internal/config"
	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// UserService handles user creation and lookup. Passwords are hashed by
// the injected collaborator before they reach the repository.
type UserService struct {
	users  repositories.UserRepository
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Create hashes the password and inserts the user.
// Returns domain.ConflictError if the email is already taken.
func (s *UserService) Create(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validateCreate(email, password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		"id", user.ID,
		"email", user.Email,
	)

	return user, nil
}

// GetByEmail retrieves a user by email.
// Returns (nil, nil) when no user exists - absence is not exceptional here.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.users.GetByEmail(ctx, email)
}

// GetByID retrieves a user by id.
// Returns (nil, nil) when no user exists.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) validateCreate(email, password string) error {
	if err := validation.Validate(email,
		validation.Required,
		validation.Length(3, config.MaxEmailLength),
		is.Email,
	); err != nil {
		return fmt.Errorf("email: %v", err)
	}

	if err := validation.Validate(password,
		validation.Required,
		validation.Length(config.MinPasswordLength, config.MaxPasswordLength),
	); err != nil {
		return fmt.Errorf("password: %v", err)
	}

	return nil
}
