package repositories

import (
	"context"

	"chatstore/internal/domain/models"
)

// VoteRepository defines the interface for vote data access
type VoteRepository interface {
	// Upsert inserts or updates the vote for (chat_id, message_id) in a
	// single atomic statement. Two concurrent votes on the same message
	// must both succeed, with the later write winning.
	Upsert(ctx context.Context, vote *models.Vote) error

	// ListByChat retrieves all votes in a chat.
	// Returns an empty slice if none exist.
	ListByChat(ctx context.Context, chatID string) ([]models.Vote, error)

	// DeleteByChat deletes all of a chat's votes. Used by the chat
	// delete cascade.
	DeleteByChat(ctx context.Context, chatID string) error
}
