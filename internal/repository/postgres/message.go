package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// PostgresMessageRepository implements the MessageRepository interface using PostgreSQL
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMessageRepository creates a new PostgresMessageRepository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &PostgresMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateBatch inserts messages in order. Atomicity comes from the
// surrounding transaction (the service wraps bulk saves in ExecTx).
func (r *PostgresMessageRepository) CreateBatch(ctx context.Context, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	for i := range messages {
		msg := &messages[i]
		err := executor.QueryRow(ctx, query,
			msg.ID,
			msg.ChatID,
			msg.Role,
			msg.Content,
			msg.CreatedAt,
		).Scan(&msg.ID, &msg.CreatedAt)
		if err != nil {
			return wrapError("create message", err)
		}
	}

	return nil
}

// ListByChat retrieves a chat's messages ascending by created_at
func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, role, content, created_at
		FROM %s
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, chatID)
	if err != nil {
		return nil, wrapError("list messages", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	// Return empty slice instead of nil
	if messages == nil {
		messages = []models.Message{}
	}

	return messages, nil
}

// GetByID retrieves a message by id
func (r *PostgresMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, role, content, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Messages)

	var msg models.Message
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.Role,
		&msg.Content,
		&msg.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			// Absence is not exceptional for message lookups
			return nil, nil
		}
		return nil, wrapError("get message", err)
	}

	return &msg, nil
}

// DeleteByChatAfter deletes messages with created_at >= ts. The boundary is
// inclusive: truncating history after a regenerate removes the message being
// regenerated too.
func (r *PostgresMessageRepository) DeleteByChatAfter(ctx context.Context, chatID string, ts time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE chat_id = $1 AND created_at >= $2
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chatID, ts)
	if err != nil {
		return 0, wrapError("delete messages after timestamp", err)
	}

	return result.RowsAffected(), nil
}

// DeleteByChat deletes all of a chat's messages
func (r *PostgresMessageRepository) DeleteByChat(ctx context.Context, chatID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE chat_id = $1
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, chatID); err != nil {
		return wrapError("delete chat messages", err)
	}

	return nil
}
