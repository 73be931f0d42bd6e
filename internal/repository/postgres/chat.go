package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// PostgresChatRepository implements the ChatRepository interface using PostgreSQL
type PostgresChatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewChatRepository creates a new PostgresChatRepository
func NewChatRepository(config *RepositoryConfig) repositories.ChatRepository {
	return &PostgresChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new chat row
func (r *PostgresChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, title, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		chat.ID,
		chat.OwnerID,
		chat.Title,
		chat.Visibility,
		chat.CreatedAt,
	).Scan(&chat.ID, &chat.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("chat %s already exists", chat.ID),
				ResourceType: "chat",
				ResourceID:   chat.ID,
			}
		}
		return wrapError("create chat", err)
	}

	return nil
}

// GetByID retrieves a chat by id, without messages
func (r *PostgresChatRepository) GetByID(ctx context.Context, id string) (*models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, title, visibility, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Chats)

	var chat models.Chat
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&chat.ID,
		&chat.OwnerID,
		&chat.Title,
		&chat.Visibility,
		&chat.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			// Absence is not exceptional for chat lookups
			return nil, nil
		}
		return nil, wrapError("get chat", err)
	}

	return &chat, nil
}

// GetByIDWithMessages retrieves a chat with its messages eagerly loaded
func (r *PostgresChatRepository) GetByIDWithMessages(ctx context.Context, id string) (*models.Chat, error) {
	chat, err := r.GetByID(ctx, id)
	if err != nil || chat == nil {
		return chat, err
	}

	query := fmt.Sprintf(`
		SELECT id, chat_id, role, content, created_at
		FROM %s
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, wrapError("load chat messages", err)
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

	if messages == nil {
		messages = []models.Message{}
	}
	chat.Messages = messages

	return chat, nil
}

// ListByOwner retrieves all chats owned by a user, newest first
func (r *PostgresChatRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, title, visibility, created_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, wrapError("list chats", err)
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.OwnerID,
			&chat.Title,
			&chat.Visibility,
			&chat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}

	// Return empty slice instead of nil
	if chats == nil {
		chats = []models.Chat{}
	}

	return chats, nil
}

// UpdateVisibility flips the visibility flag and returns the updated row
func (r *PostgresChatRepository) UpdateVisibility(ctx context.Context, id, visibility string) (*models.Chat, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET visibility = $1
		WHERE id = $2
		RETURNING id, owner_id, title, visibility, created_at
	`, r.tables.Chats)

	var chat models.Chat
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, visibility, id).Scan(
		&chat.ID,
		&chat.OwnerID,
		&chat.Title,
		&chat.Visibility,
		&chat.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}
		return nil, wrapError("update chat visibility", err)
	}

	return &chat, nil
}

// Delete removes the chat row and returns the deleted snapshot. Votes and
// messages referencing the chat must already be gone; the service layer
// runs this as the last step of the cascade transaction.
func (r *PostgresChatRepository) Delete(ctx context.Context, id string) (*models.Chat, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
		RETURNING id, owner_id, title, visibility, created_at
	`, r.tables.Chats)

	var chat models.Chat
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&chat.ID,
		&chat.OwnerID,
		&chat.Title,
		&chat.Visibility,
		&chat.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
		}
		return nil, wrapError("delete chat", err)
	}

	return &chat, nil
}
