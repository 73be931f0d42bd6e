package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
)

func newTestMessageService() (*MessageService, *fakeMessageRepo) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeMessageRepo()
	return NewMessageService(repo, &fakeTxManager{}, logger), repo
}

func TestMessageSave_InsertionOrder(t *testing.T) {
	svc, _ := newTestMessageService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, "c1", []models.MessageDraft{
		{Role: models.RoleUser, Content: json.RawMessage(`{"text":"hi"}`)},
		{Role: models.RoleAssistant, Content: json.RawMessage(`{"text":"hello"}`)},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 inserted rows, got %d", len(saved))
	}

	messages, err := svc.ListByChat(ctx, "c1")
	if err != nil {
		t.Fatalf("ListByChat failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[1].Role != models.RoleAssistant {
		t.Errorf("expected insertion order preserved, got roles %s, %s",
			messages[0].Role, messages[1].Role)
	}
	if !messages[0].CreatedAt.Before(messages[1].CreatedAt) {
		t.Error("expected strictly increasing timestamps across a bulk save")
	}
}

func TestMessageSave_CallerTimestamps(t *testing.T) {
	svc, _ := newTestMessageService()

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	saved, err := svc.Save(context.Background(), "c1", []models.MessageDraft{
		{Role: models.RoleUser, Content: json.RawMessage(`{"text":"replay"}`), CreatedAt: ts},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !saved[0].CreatedAt.Equal(ts) {
		t.Errorf("expected caller-supplied timestamp %v, got %v", ts, saved[0].CreatedAt)
	}
}

func TestMessageSave_InvalidInput(t *testing.T) {
	svc, _ := newTestMessageService()
	ctx := context.Background()

	cases := []struct {
		name   string
		chatID string
		drafts []models.MessageDraft
	}{
		{"empty chat id", "", []models.MessageDraft{
			{Role: models.RoleUser, Content: json.RawMessage(`{}`)},
		}},
		{"no drafts", "c1", nil},
		{"unknown role", "c1", []models.MessageDraft{
			{Role: "narrator", Content: json.RawMessage(`{}`)},
		}},
		{"empty content", "c1", []models.MessageDraft{
			{Role: models.RoleUser},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(ctx, tc.chatID, tc.drafts)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestMessageDeleteAfter_InclusiveBoundary(t *testing.T) {
	svc, _ := newTestMessageService()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	drafts := []models.MessageDraft{
		{Role: models.RoleUser, Content: json.RawMessage(`{"n":1}`), CreatedAt: base},
		{Role: models.RoleAssistant, Content: json.RawMessage(`{"n":2}`), CreatedAt: base.Add(time.Minute)},
		{Role: models.RoleUser, Content: json.RawMessage(`{"n":3}`), CreatedAt: base.Add(2 * time.Minute)},
	}
	if _, err := svc.Save(ctx, "c1", drafts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Cut at the second message: it and everything later must go
	count, err := svc.DeleteAfter(ctx, "c1", base.Add(time.Minute))
	if err != nil {
		t.Fatalf("DeleteAfter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 deleted rows, got %d", count)
	}

	remaining, err := svc.ListByChat(ctx, "c1")
	if err != nil {
		t.Fatalf("ListByChat failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining message, got %d", len(remaining))
	}
	if !remaining[0].CreatedAt.Equal(base) {
		t.Errorf("expected the message strictly before the cut to remain, got %v", remaining[0].CreatedAt)
	}
}

func TestMessageGetByID_Absent(t *testing.T) {
	svc, _ := newTestMessageService()

	msg, err := svc.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if msg != nil {
		t.Errorf("expected nil for absent message, got %+v", msg)
	}
}
