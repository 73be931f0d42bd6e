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

// CreateChatRequest carries the fields for chat creation. ID is optional:
// callers supply one for idempotent creation, otherwise one is generated.
type CreateChatRequest struct {
	ID      string
	OwnerID string
	Title   string
}

// ChatService handles chat session management, including the cascading
// delete (votes, then messages, then the chat row) in one transaction.
type ChatService struct {
	chats     repositories.ChatRepository
	messages  repositories.MessageRepository
	votes     repositories.VoteRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	chats repositories.ChatRepository,
	messages repositories.MessageRepository,
	votes repositories.VoteRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		chats:     chats,
		messages:  messages,
		votes:     votes,
		txManager: txManager,
		logger:    logger,
	}
}

// Create inserts a new chat. Visibility defaults to private.
func (s *ChatService) Create(ctx context.Context, req *CreateChatRequest) (*models.Chat, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	chat := &models.Chat{
		ID:         id,
		OwnerID:    req.OwnerID,
		Title:      strings.TrimSpace(req.Title),
		Visibility: models.VisibilityPrivate,
		CreatedAt:  time.Now(),
	}

	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat created",
		"id", chat.ID,
		"owner_id", chat.OwnerID,
		"title", chat.Title,
	)

	return chat, nil
}

// GetByID retrieves a chat without its messages.
// Returns (nil, nil) when no chat exists.
func (s *ChatService) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	return s.chats.GetByID(ctx, id)
}

// GetByIDWithMessages retrieves a chat with messages eagerly loaded in
// chronological order. Returns (nil, nil) when no chat exists.
func (s *ChatService) GetByIDWithMessages(ctx context.Context, id string) (*models.Chat, error) {
	return s.chats.GetByIDWithMessages(ctx, id)
}

// ListByOwner retrieves a user's chats, newest first.
func (s *ChatService) ListByOwner(ctx context.Context, ownerID string) ([]models.Chat, error) {
	return s.chats.ListByOwner(ctx, ownerID)
}

// UpdateVisibility flips the visibility flag.
// Returns domain.ErrNotFound if the chat is absent.
func (s *ChatService) UpdateVisibility(ctx context.Context, id, visibility string) (*models.Chat, error) {
	if err := validation.Validate(visibility,
		validation.Required,
		validation.In(models.VisibilityPrivate, models.VisibilityPublic),
	); err != nil {
		return nil, fmt.Errorf("%w: visibility: %v", domain.ErrValidation, err)
	}

	chat, err := s.chats.UpdateVisibility(ctx, id, visibility)
	if err != nil {
		return nil, err
	}

	s.logger.Info("chat visibility updated",
		"id", chat.ID,
		"visibility", chat.Visibility,
	)

	return chat, nil
}

// Delete removes a chat and its dependents in one transaction: votes
// first, then messages, then the chat row (children before parent, no
// cascade automation assumed). Returns the deleted chat snapshot.
// Returns domain.ErrNotFound if the chat is absent.
func (s *ChatService) Delete(ctx context.Context, id string) (*models.Chat, error) {
	var deleted *models.Chat

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.votes.DeleteByChat(txCtx, id); err != nil {
			return err
		}
		if err := s.messages.DeleteByChat(txCtx, id); err != nil {
			return err
		}

		chat, err := s.chats.Delete(txCtx, id)
		if err != nil {
			return err
		}
		deleted = chat
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("chat deleted",
		"id", deleted.ID,
		"owner_id", deleted.OwnerID,
	)

	return deleted, nil
}

func (s *ChatService) validateCreateRequest(req *CreateChatRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxChatTitleLength),
		),
	)
}
