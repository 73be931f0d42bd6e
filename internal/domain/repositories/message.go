package repositories

import (
	"context"
	"time"

	"chatstore/internal/domain/models"
)

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// CreateBatch inserts messages in order. Callers wrap this in a
	// transaction when all-or-nothing semantics are required.
	CreateBatch(ctx context.Context, messages []models.Message) error

	// ListByChat retrieves a chat's messages ascending by created_at.
	// Returns an empty slice if none exist.
	ListByChat(ctx context.Context, chatID string) ([]models.Message, error)

	// GetByID retrieves a message by id.
	// Returns (nil, nil) when no message exists - absence is not exceptional here.
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// DeleteByChatAfter deletes all of a chat's messages with
	// created_at >= ts (inclusive, for history truncation after a
	// regenerate/edit). Returns the number of rows removed.
	DeleteByChatAfter(ctx context.Context, chatID string, ts time.Time) (int64, error)

	// DeleteByChat deletes all of a chat's messages. Used by the chat
	// delete cascade.
	DeleteByChat(ctx context.Context, chatID string) error
}
