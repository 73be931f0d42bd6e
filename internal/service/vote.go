package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// VoteService handles message voting. Voting is one atomic upsert on the
// (chat, message) composite key, so concurrent votes on the same message
// never race or produce duplicate rows.
type VoteService struct {
	votes  repositories.VoteRepository
	logger *slog.Logger
}

// NewVoteService creates a new vote service
func NewVoteService(votes repositories.VoteRepository, logger *slog.Logger) *VoteService {
	return &VoteService{
		votes:  votes,
		logger: logger,
	}
}

// Vote records an up or down vote for a message. Re-voting updates the
// existing row; the latest direction wins.
func (s *VoteService) Vote(ctx context.Context, chatID, messageID, direction string) (*models.Vote, error) {
	if err := s.validateVote(chatID, messageID, direction); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	vote := &models.Vote{
		ChatID:    chatID,
		MessageID: messageID,
		IsUpvoted: direction == models.VoteUp,
	}

	if err := s.votes.Upsert(ctx, vote); err != nil {
		return nil, err
	}

	s.logger.Info("vote recorded",
		"chat_id", vote.ChatID,
		"message_id", vote.MessageID,
		"is_upvoted", vote.IsUpvoted,
	)

	return vote, nil
}

// ListByChat retrieves all votes in a chat.
func (s *VoteService) ListByChat(ctx context.Context, chatID string) ([]models.Vote, error) {
	return s.votes.ListByChat(ctx, chatID)
}

func (s *VoteService) validateVote(chatID, messageID, direction string) error {
	if err := validation.Validate(chatID, validation.Required); err != nil {
		return fmt.Errorf("chat_id: %v", err)
	}
	if err := validation.Validate(messageID, validation.Required); err != nil {
		return fmt.Errorf("message_id: %v", err)
	}
	if err := validation.Validate(direction,
		validation.Required,
		validation.In(models.VoteUp, models.VoteDown),
	); err != nil {
		return fmt.Errorf("direction: %v", err)
	}
	return nil
}
