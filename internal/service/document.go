package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chatstore/internal/config"
	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// SaveDocumentRequest carries the fields for a document save. ID is
// optional: empty starts a new document identity, a supplied id appends a
// version to an existing chain.
type SaveDocumentRequest struct {
	ID      string
	OwnerID string
	Title   string
	Content *string
}

// DocumentService handles the append-only document version chain and its
// truncation (suggestions before document rows, in one transaction).
type DocumentService struct {
	documents   repositories.DocumentRepository
	suggestions repositories.SuggestionRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documents repositories.DocumentRepository,
	suggestions repositories.SuggestionRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		documents:   documents,
		suggestions: suggestions,
		txManager:   txManager,
		logger:      logger,
	}
}

// Save appends a version row. A new identity is created when the request
// carries no id.
func (s *DocumentService) Save(ctx context.Context, req *SaveDocumentRequest) (*models.Document, error) {
	if err := s.validateSaveRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	doc := &models.Document{
		ID:        id,
		CreatedAt: time.Now(),
		OwnerID:   req.OwnerID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
	}

	if err := s.documents.CreateVersion(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document version saved",
		"id", doc.ID,
		"owner_id", doc.OwnerID,
		"version", doc.CreatedAt,
	)

	return doc, nil
}

// ListVersions retrieves a document's full version history, oldest first.
func (s *DocumentService) ListVersions(ctx context.Context, id string) ([]models.Document, error) {
	return s.documents.ListVersions(ctx, id)
}

// Latest retrieves the current version (max created_at) for an id.
// Returns (nil, nil) when no version exists.
func (s *DocumentService) Latest(ctx context.Context, id string) (*models.Document, error) {
	return s.documents.GetLatest(ctx, id)
}

// ListByOwner retrieves the current version of each document a user owns,
// newest first.
func (s *DocumentService) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	return s.documents.ListByOwner(ctx, ownerID)
}

// DeleteVersionsAfter removes versions newer than ts and the suggestions
// pinned to them, children first, in one transaction. The version at ts
// itself survives. Returns the number of version rows removed.
func (s *DocumentService) DeleteVersionsAfter(ctx context.Context, id string, ts time.Time) (int64, error) {
	var deleted int64

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.suggestions.DeleteByDocumentAfter(txCtx, id, ts); err != nil {
			return err
		}

		count, err := s.documents.DeleteVersionsAfter(txCtx, id, ts)
		if err != nil {
			return err
		}
		deleted = count
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("document versions truncated",
		"id", id,
		"after", ts,
		"count", deleted,
	)

	return deleted, nil
}

func (s *DocumentService) validateSaveRequest(req *SaveDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxDocumentTitleLength),
		),
	)
}
