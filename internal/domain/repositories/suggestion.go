package repositories

import (
	"context"
	"time"

	"chatstore/internal/domain/models"
)

// SuggestionRepository defines the interface for suggestion data access
type SuggestionRepository interface {
	// CreateBatch inserts suggestions in order. Each row must already
	// carry the (document_id, document_created_at) version stamp.
	CreateBatch(ctx context.Context, suggestions []models.Suggestion) error

	// ListByDocument retrieves suggestions for every version of a
	// document, newest version first. Returns an empty slice if none exist.
	ListByDocument(ctx context.Context, documentID string) ([]models.Suggestion, error)

	// Resolve marks a suggestion resolved and returns the updated row.
	// Returns domain.ErrNotFound if the suggestion is absent.
	Resolve(ctx context.Context, id string) (*models.Suggestion, error)

	// DeleteByDocumentAfter deletes suggestions pinned to versions with
	// document_created_at > ts. Used by the document truncation cascade.
	DeleteByDocumentAfter(ctx context.Context, documentID string, ts time.Time) (int64, error)
}
