package repositories

import (
	"context"

	"chatstore/internal/domain/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user row.
	// Returns domain.ConflictError if the email is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by their unique email.
	// Returns (nil, nil) when no user exists - absence is not exceptional here.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID retrieves a user by id.
	// Returns (nil, nil) when no user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
