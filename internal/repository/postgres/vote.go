package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// PostgresVoteRepository implements the VoteRepository interface using PostgreSQL
type PostgresVoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewVoteRepository creates a new PostgresVoteRepository
func NewVoteRepository(config *RepositoryConfig) repositories.VoteRepository {
	return &PostgresVoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert inserts or updates the vote for (chat_id, message_id). A single
// ON CONFLICT statement closes the check-then-act race: concurrent votes on
// the same message both succeed and the later write wins.
func (r *PostgresVoteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (chat_id, message_id, is_upvoted)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, message_id)
		DO UPDATE SET is_upvoted = EXCLUDED.is_upvoted
	`, r.tables.Votes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, vote.ChatID, vote.MessageID, vote.IsUpvoted); err != nil {
		return wrapError("upsert vote", err)
	}

	return nil
}

// ListByChat retrieves all votes in a chat
func (r *PostgresVoteRepository) ListByChat(ctx context.Context, chatID string) ([]models.Vote, error) {
	query := fmt.Sprintf(`
		SELECT chat_id, message_id, is_upvoted
		FROM %s
		WHERE chat_id = $1
	`, r.tables.Votes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, chatID)
	if err != nil {
		return nil, wrapError("list votes", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var vote models.Vote
		if err := rows.Scan(&vote.ChatID, &vote.MessageID, &vote.IsUpvoted); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}

	// Return empty slice instead of nil
	if votes == nil {
		votes = []models.Vote{}
	}

	return votes, nil
}

// DeleteByChat deletes all of a chat's votes
func (r *PostgresVoteRepository) DeleteByChat(ctx context.Context, chatID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE chat_id = $1
	`, r.tables.Votes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, chatID); err != nil {
		return wrapError("delete chat votes", err)
	}

	return nil
}
