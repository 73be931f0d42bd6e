package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"chatstore/internal/auth"
	"chatstore/internal/config"
	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/repository/postgres"
	"chatstore/internal/service"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating the schema (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, cfg.PoolMaxConns, cfg.PoolMinConns)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Printf("🧹 Dropping existing tables")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.CreateSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Printf("  ✓ Schema ready")

	if *schemaOnly {
		return
	}

	if err := seedDemoData(ctx, pool, tables, cfg, logger); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	log.Printf("  ✓ Demo data seeded")
}

// seedDemoData creates a demo user with one chat, a short message
// exchange, a vote, and a versioned document carrying a suggestion.
// Everything goes through the gateway services so seeding exercises the
// same code paths as production callers.
func seedDemoData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, cfg *config.Config, logger *slog.Logger) error {
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	userRepo := postgres.NewUserRepository(repoConfig)
	chatRepo := postgres.NewChatRepository(repoConfig)
	messageRepo := postgres.NewMessageRepository(repoConfig)
	voteRepo := postgres.NewVoteRepository(repoConfig)
	documentRepo := postgres.NewDocumentRepository(repoConfig)
	suggestionRepo := postgres.NewSuggestionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	users := service.NewUserService(userRepo, hasher, logger)
	chats := service.NewChatService(chatRepo, messageRepo, voteRepo, txManager, logger)
	messages := service.NewMessageService(messageRepo, txManager, logger)
	votes := service.NewVoteService(voteRepo, logger)
	documents := service.NewDocumentService(documentRepo, suggestionRepo, txManager, logger)
	suggestions := service.NewSuggestionService(suggestionRepo, documentRepo, txManager, logger)

	user, err := users.Create(ctx, "demo@example.com", "demo-password-1")
	if err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		// Re-running the seed is fine; reuse the existing user
		user, err = users.GetByEmail(ctx, "demo@example.com")
		if err != nil {
			return err
		}
	}

	chat, err := chats.Create(ctx, &service.CreateChatRequest{
		OwnerID: user.ID,
		Title:   "Getting started",
	})
	if err != nil {
		return err
	}

	saved, err := messages.Save(ctx, chat.ID, []models.MessageDraft{
		{Role: models.RoleUser, Content: json.RawMessage(`{"text":"Hello there"}`)},
		{Role: models.RoleAssistant, Content: json.RawMessage(`{"text":"Hi! How can I help?"}`)},
	})
	if err != nil {
		return err
	}

	if _, err := votes.Vote(ctx, chat.ID, saved[1].ID, models.VoteUp); err != nil {
		return err
	}

	content := "Draft content for the demo document."
	doc, err := documents.Save(ctx, &service.SaveDocumentRequest{
		OwnerID: user.ID,
		Title:   "Demo document",
		Content: &content,
	})
	if err != nil {
		return err
	}

	_, err = suggestions.Save(ctx, doc.ID, user.ID, []models.SuggestionDraft{
		{
			OriginalText:  "Draft content",
			SuggestedText: "Polished content",
		},
	})
	return err
}
