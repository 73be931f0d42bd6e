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

// PostgresSuggestionRepository implements the SuggestionRepository interface using PostgreSQL
type PostgresSuggestionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSuggestionRepository creates a new PostgresSuggestionRepository
func NewSuggestionRepository(config *RepositoryConfig) repositories.SuggestionRepository {
	return &PostgresSuggestionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateBatch inserts suggestions in order. Rows must carry the
// (document_id, document_created_at) version stamp; the composite FK
// rejects stamps that don't name an existing version.
func (r *PostgresSuggestionRepository) CreateBatch(ctx context.Context, suggestions []models.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, document_created_at, owner_id,
			original_text, suggested_text, description, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, r.tables.Suggestions)

	executor := GetExecutor(ctx, r.pool)
	for i := range suggestions {
		s := &suggestions[i]
		err := executor.QueryRow(ctx, query,
			s.ID,
			s.DocumentID,
			s.DocumentCreatedAt,
			s.OwnerID,
			s.OriginalText,
			s.SuggestedText,
			s.Description,
			s.IsResolved,
			s.CreatedAt,
		).Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			return wrapError("create suggestion", err)
		}
	}

	return nil
}

// ListByDocument retrieves suggestions for every version of a document,
// newest version first, then oldest suggestion first within a version
func (r *PostgresSuggestionRepository) ListByDocument(ctx context.Context, documentID string) ([]models.Suggestion, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, document_created_at, owner_id,
			original_text, suggested_text, description, is_resolved, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY document_created_at DESC, created_at ASC
	`, r.tables.Suggestions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, wrapError("list suggestions", err)
	}
	defer rows.Close()

	var suggestions []models.Suggestion
	for rows.Next() {
		var s models.Suggestion
		err := rows.Scan(
			&s.ID,
			&s.DocumentID,
			&s.DocumentCreatedAt,
			&s.OwnerID,
			&s.OriginalText,
			&s.SuggestedText,
			&s.Description,
			&s.IsResolved,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestions: %w", err)
	}

	// Return empty slice instead of nil
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	return suggestions, nil
}

// Resolve marks a suggestion resolved and returns the updated row
func (r *PostgresSuggestionRepository) Resolve(ctx context.Context, id string) (*models.Suggestion, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_resolved = TRUE
		WHERE id = $1
		RETURNING id, document_id, document_created_at, owner_id,
			original_text, suggested_text, description, is_resolved, created_at
	`, r.tables.Suggestions)

	var s models.Suggestion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.DocumentID,
		&s.DocumentCreatedAt,
		&s.OwnerID,
		&s.OriginalText,
		&s.SuggestedText,
		&s.Description,
		&s.IsResolved,
		&s.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound)
		}
		return nil, wrapError("resolve suggestion", err)
	}

	return &s, nil
}

// DeleteByDocumentAfter deletes suggestions pinned to versions newer than
// ts. Runs before the matching document-version delete in the truncation
// transaction (children before parent).
func (r *PostgresSuggestionRepository) DeleteByDocumentAfter(ctx context.Context, documentID string, ts time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE document_id = $1 AND document_created_at > $2
	`, r.tables.Suggestions)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, documentID, ts)
	if err != nil {
		return 0, wrapError("delete suggestions after timestamp", err)
	}

	return result.RowsAffected(), nil
}
