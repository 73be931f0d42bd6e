package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatstore/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users       string
	Chats       string
	Messages    string
	Votes       string
	Documents   string
	Suggestions string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:       fmt.Sprintf("%susers", prefix),
		Chats:       fmt.Sprintf("%schats", prefix),
		Messages:    fmt.Sprintf("%smessages", prefix),
		Votes:       fmt.Sprintf("%svotes", prefix),
		Documents:   fmt.Sprintf("%sdocuments", prefix),
		Suggestions: fmt.Sprintf("%ssuggestions", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Table names are interpolated with fmt.Sprintf before the SQL reaches the
// database, so each environment prefix (dev_, test_, prod_) gets its own
// prepared statements; the dynamic names are safe with statement caching.
//
// Port 6543 (transaction-pooling PgBouncer, e.g. Supabase) does not support
// prepared statements. QueryExecModeCacheDescribe keeps the extended
// protocol (needed for JSONB encoding) while caching only statement
// descriptions, which PgBouncer tolerates. An explicit
// default_query_exec_mode in the connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = maxConns
	config.MinConns = minConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions
// when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
