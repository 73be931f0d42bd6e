package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface using PostgreSQL
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new PostgresDocumentRepository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateVersion appends a version row to a document's chain
func (r *PostgresDocumentRepository) CreateVersion(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, created_at, owner_id, title, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ID,
		doc.CreatedAt,
		doc.OwnerID,
		doc.Title,
		doc.Content,
	).Scan(&doc.ID, &doc.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document version (%s, %s) already exists", doc.ID, doc.CreatedAt.Format(time.RFC3339Nano)),
				ResourceType: "document",
				ResourceID:   doc.ID,
			}
		}
		return wrapError("create document version", err)
	}

	return nil
}

// ListVersions retrieves the full version history for an id, oldest first
func (r *PostgresDocumentRepository) ListVersions(ctx context.Context, id string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, created_at, owner_id, title, content
		FROM %s
		WHERE id = $1
		ORDER BY created_at ASC
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, wrapError("list document versions", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.CreatedAt,
			&doc.OwnerID,
			&doc.Title,
			&doc.Content,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	// Return empty slice instead of nil
	if docs == nil {
		docs = []models.Document{}
	}

	return docs, nil
}

// GetLatest retrieves the current version (max created_at) for an id
func (r *PostgresDocumentRepository) GetLatest(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, created_at, owner_id, title, content
		FROM %s
		WHERE id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.CreatedAt,
		&doc.OwnerID,
		&doc.Title,
		&doc.Content,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, wrapError("get latest document", err)
	}

	return &doc, nil
}

// ListByOwner retrieves the current version of every document owned by a
// user, newest first
func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (id) id, created_at, owner_id, title, content
		FROM %s
		WHERE owner_id = $1
		ORDER BY id, created_at DESC
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, wrapError("list documents", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.CreatedAt,
			&doc.OwnerID,
			&doc.Title,
			&doc.Content,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	if docs == nil {
		docs = []models.Document{}
	}

	return docs, nil
}

// DeleteVersionsAfter deletes version rows with created_at > ts. The
// boundary is exclusive so the version at ts survives truncation.
func (r *PostgresDocumentRepository) DeleteVersionsAfter(ctx context.Context, id string, ts time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND created_at > $2
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, ts)
	if err != nil {
		return 0, wrapError("delete document versions", err)
	}

	return result.RowsAffected(), nil
}
