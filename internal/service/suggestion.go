package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// SuggestionService handles suggestion persistence. Saves must resolve the
// target document's current version first: the composite foreign key needs
// an exact version stamp, so the lookup is mandatory.
type SuggestionService struct {
	suggestions repositories.SuggestionRepository
	documents   repositories.DocumentRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(
	suggestions repositories.SuggestionRepository,
	documents repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *SuggestionService {
	return &SuggestionService{
		suggestions: suggestions,
		documents:   documents,
		txManager:   txManager,
		logger:      logger,
	}
}

// Save resolves the document's current version, stamps each draft with it,
// and bulk-inserts in one transaction. Nothing is written when the
// document does not exist.
// Returns domain.NotFoundError if the document is absent.
func (s *SuggestionService) Save(ctx context.Context, documentID, ownerID string, drafts []models.SuggestionDraft) ([]models.Suggestion, error) {
	if err := s.validateSave(documentID, ownerID, drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc, err := s.documents.GetLatest(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("document %s not found", documentID),
		}
	}

	now := time.Now()
	suggestions := make([]models.Suggestion, len(drafts))
	for i, draft := range drafts {
		suggestions[i] = models.Suggestion{
			ID:                uuid.New().String(),
			DocumentID:        doc.ID,
			DocumentCreatedAt: doc.CreatedAt,
			OwnerID:           ownerID,
			OriginalText:      draft.OriginalText,
			SuggestedText:     draft.SuggestedText,
			Description:       draft.Description,
			IsResolved:        false,
			CreatedAt:         now,
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.suggestions.CreateBatch(txCtx, suggestions)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("suggestions saved",
		"document_id", doc.ID,
		"document_version", doc.CreatedAt,
		"count", len(suggestions),
	)

	return suggestions, nil
}

// ListByDocument retrieves suggestions for every version of a document.
func (s *SuggestionService) ListByDocument(ctx context.Context, documentID string) ([]models.Suggestion, error) {
	return s.suggestions.ListByDocument(ctx, documentID)
}

// Resolve marks a suggestion resolved.
// Returns domain.ErrNotFound if the suggestion is absent.
func (s *SuggestionService) Resolve(ctx context.Context, id string) (*models.Suggestion, error) {
	suggestion, err := s.suggestions.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("suggestion resolved",
		"id", suggestion.ID,
		"document_id", suggestion.DocumentID,
	)

	return suggestion, nil
}

func (s *SuggestionService) validateSave(documentID, ownerID string, drafts []models.SuggestionDraft) error {
	if err := validation.Validate(documentID, validation.Required); err != nil {
		return fmt.Errorf("document_id: %v", err)
	}
	if err := validation.Validate(ownerID, validation.Required); err != nil {
		return fmt.Errorf("owner_id: %v", err)
	}
	if len(drafts) == 0 {
		return fmt.Errorf("drafts: cannot be empty")
	}

	for i, draft := range drafts {
		if err := validation.Validate(draft.OriginalText, validation.Required); err != nil {
			return fmt.Errorf("drafts[%d].original_text: %v", i, err)
		}
		if err := validation.Validate(draft.SuggestedText, validation.Required); err != nil {
			return fmt.Errorf("drafts[%d].suggested_text: %v", i, err)
		}
	}

	return nil
}
