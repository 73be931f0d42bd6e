package repositories

import (
	"context"
	"time"

	"chatstore/internal/domain/models"
)

// DocumentRepository defines the interface for document data access.
// Documents are append-only version chains: every save inserts a new row
// and "the document" is the row with the latest created_at for an id.
type DocumentRepository interface {
	// CreateVersion appends a version row.
	// Returns domain.ConflictError if (id, created_at) is already taken.
	CreateVersion(ctx context.Context, doc *models.Document) error

	// ListVersions retrieves the full version history for an id,
	// ascending by created_at. Returns an empty slice if none exist.
	ListVersions(ctx context.Context, id string) ([]models.Document, error)

	// GetLatest retrieves the current version (max created_at) for an id.
	// Returns (nil, nil) when no version exists.
	GetLatest(ctx context.Context, id string) (*models.Document, error)

	// ListByOwner retrieves the current version of every document owned
	// by a user, newest first. Returns an empty slice if none exist.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error)

	// DeleteVersionsAfter deletes version rows with created_at > ts
	// (exclusive). Dependent suggestions must already be gone; callers
	// run this inside the truncation transaction.
	DeleteVersionsAfter(ctx context.Context, id string, ts time.Time) (int64, error)
}
