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

// MessageService handles bulk message persistence and history truncation.
type MessageService struct {
	messages  repositories.MessageRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewMessageService creates a new message service
func NewMessageService(
	messages repositories.MessageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		messages:  messages,
		txManager: txManager,
		logger:    logger,
	}
}

// Save bulk-inserts messages for a chat in a single transaction
// (all-or-nothing) and returns the inserted rows. Drafts without a
// CreatedAt are stamped at save time, offset by their position so
// insertion order survives the chronological read path.
func (s *MessageService) Save(ctx context.Context, chatID string, drafts []models.MessageDraft) ([]models.Message, error) {
	if err := s.validateSave(chatID, drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	messages := make([]models.Message, len(drafts))
	for i, draft := range drafts {
		createdAt := draft.CreatedAt
		if createdAt.IsZero() {
			createdAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		messages[i] = models.Message{
			ID:        uuid.New().String(),
			ChatID:    chatID,
			Role:      draft.Role,
			Content:   draft.Content,
			CreatedAt: createdAt,
		}
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.messages.CreateBatch(txCtx, messages)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("messages saved",
		"chat_id", chatID,
		"count", len(messages),
	)

	return messages, nil
}

// ListByChat retrieves a chat's messages ascending by created_at.
func (s *MessageService) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.messages.ListByChat(ctx, chatID)
}

// GetByID retrieves a message by id.
// Returns (nil, nil) when no message exists.
func (s *MessageService) GetByID(ctx context.Context, id string) (*models.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// DeleteAfter truncates a chat's history: every message with
// created_at >= ts is removed. Returns the number of rows deleted.
func (s *MessageService) DeleteAfter(ctx context.Context, chatID string, ts time.Time) (int64, error) {
	count, err := s.messages.DeleteByChatAfter(ctx, chatID, ts)
	if err != nil {
		return 0, err
	}

	s.logger.Info("messages truncated",
		"chat_id", chatID,
		"after", ts,
		"count", count,
	)

	return count, nil
}

func (s *MessageService) validateSave(chatID string, drafts []models.MessageDraft) error {
	if err := validation.Validate(chatID, validation.Required); err != nil {
		return fmt.Errorf("chat_id: %v", err)
	}
	if len(drafts) == 0 {
		return fmt.Errorf("drafts: cannot be empty")
	}

	for i, draft := range drafts {
		if err := validation.Validate(draft.Role,
			validation.Required,
			validation.In(models.RoleUser, models.RoleAssistant, models.RoleSystem),
		); err != nil {
			return fmt.Errorf("drafts[%d].role: %v", i, err)
		}
		if len(draft.Content) == 0 {
			return fmt.Errorf("drafts[%d].content: cannot be empty", i)
		}
	}

	return nil
}
