package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema creates tables and indexes if they don't exist. Safe to run
// repeatedly.
//
// Deletes are NOT cascaded by the schema: the gateway removes children
// before parents in explicit transactions, so behavior stays portable to
// engines without cascade support.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return wrapError("create uuid extension", err)
	}

	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email VARCHAR(254) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return wrapError("create users table", err)
	}

	createChats := `
		CREATE TABLE IF NOT EXISTS ` + tables.Chats + ` (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES ` + tables.Users + `(id),
			title VARCHAR(255) NOT NULL,
			visibility TEXT NOT NULL DEFAULT 'private'
				CHECK (visibility IN ('private', 'public')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createChats); err != nil {
		return wrapError("create chats table", err)
	}

	createMessages := `
		CREATE TABLE IF NOT EXISTS ` + tables.Messages + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			chat_id UUID NOT NULL REFERENCES ` + tables.Chats + `(id),
			role VARCHAR(20) NOT NULL,
			content JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createMessages); err != nil {
		return wrapError("create messages table", err)
	}

	createVotes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Votes + ` (
			chat_id UUID NOT NULL REFERENCES ` + tables.Chats + `(id),
			message_id UUID NOT NULL REFERENCES ` + tables.Messages + `(id),
			is_upvoted BOOLEAN NOT NULL,
			PRIMARY KEY (chat_id, message_id)
		)
	`
	if _, err := pool.Exec(ctx, createVotes); err != nil {
		return wrapError("create votes table", err)
	}

	// Append-only version chain: identity is (id, created_at), edits insert
	// new rows sharing the id.
	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			owner_id UUID NOT NULL REFERENCES ` + tables.Users + `(id),
			title VARCHAR(255) NOT NULL,
			content TEXT,
			PRIMARY KEY (id, created_at)
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return wrapError("create documents table", err)
	}

	createSuggestions := `
		CREATE TABLE IF NOT EXISTS ` + tables.Suggestions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			document_id UUID NOT NULL,
			document_created_at TIMESTAMPTZ NOT NULL,
			owner_id UUID NOT NULL REFERENCES ` + tables.Users + `(id),
			original_text TEXT NOT NULL,
			suggested_text TEXT NOT NULL,
			description TEXT,
			is_resolved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			FOREIGN KEY (document_id, document_created_at)
				REFERENCES ` + tables.Documents + `(id, created_at)
		)
	`
	if _, err := pool.Exec(ctx, createSuggestions); err != nil {
		return wrapError("create suggestions table", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chats_owner_created ON ` + tables.Chats + `(owner_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `messages_chat_created ON ` + tables.Messages + `(chat_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `votes_message ON ` + tables.Votes + `(message_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_owner ON ` + tables.Documents + `(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `suggestions_document ON ` + tables.Suggestions + `(document_id, document_created_at)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return wrapError("create index", err)
		}
	}

	return nil
}

// DropSchema drops all tables in reverse dependency order.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	tableNames := []string{
		tables.Suggestions,
		tables.Documents,
		tables.Votes,
		tables.Messages,
		tables.Chats,
		tables.Users,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return wrapError("drop table "+table, err)
		}
	}

	return nil
}
