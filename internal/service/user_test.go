package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"chatstore/internal/domain"
)

func newTestUserService() (*UserService, *fakeUserRepo) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeUserRepo()
	return NewUserService(repo, &fakeHasher{}, logger), repo
}

func TestUserCreate_HashesPassword(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.Create(context.Background(), "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if user.PasswordHash == "s3cret-pass" {
		t.Error("stored password equals the plaintext input")
	}
	if user.PasswordHash == "" {
		t.Error("expected a password hash, got empty string")
	}

	found, err := svc.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected user, got nil")
	}
	if found.PasswordHash == "s3cret-pass" {
		t.Error("persisted password equals the plaintext input")
	}
}

func TestUserCreate_NormalizesEmail(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.Create(context.Background(), "  Bob@Example.COM ", "s3cret-pass")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}

	found, err := svc.GetByEmail(context.Background(), "BOB@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected lookup with differently-cased email to find the user")
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Create(context.Background(), "carol@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), "carol@example.com", "other-pass-123")
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUserCreate_InvalidInput(t *testing.T) {
	svc, _ := newTestUserService()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "s3cret-pass"},
		{"malformed email", "not-an-email", "s3cret-pass"},
		{"empty password", "dave@example.com", ""},
		{"short password", "dave@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.email, tc.password)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestUserGetByEmail_Absent(t *testing.T) {
	svc, _ := newTestUserService()

	user, err := svc.GetByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for absent user, got %+v", user)
	}
}
