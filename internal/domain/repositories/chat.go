package repositories

import (
	"context"

	"chatstore/internal/domain/models"
)

// ChatRepository defines the interface for chat data access
type ChatRepository interface {
	// Create inserts a new chat row.
	// Returns domain.ConflictError if the id is already taken.
	Create(ctx context.Context, chat *models.Chat) error

	// GetByID retrieves a chat by id, without messages.
	// Returns (nil, nil) when no chat exists - absence is not exceptional here.
	GetByID(ctx context.Context, id string) (*models.Chat, error)

	// GetByIDWithMessages retrieves a chat with its messages eagerly
	// loaded in chronological order.
	// Returns (nil, nil) when no chat exists.
	GetByIDWithMessages(ctx context.Context, id string) (*models.Chat, error)

	// ListByOwner retrieves all chats owned by a user, newest first.
	// Returns an empty slice if none exist.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Chat, error)

	// UpdateVisibility flips the visibility flag and returns the updated row.
	// Returns domain.ErrNotFound if the chat is absent.
	UpdateVisibility(ctx context.Context, id, visibility string) (*models.Chat, error)

	// Delete removes the chat row and returns the deleted snapshot.
	// Dependent votes and messages must already be gone; callers run this
	// inside the cascade transaction.
	// Returns domain.ErrNotFound if the chat is absent.
	Delete(ctx context.Context, id string) (*models.Chat, error)
}
