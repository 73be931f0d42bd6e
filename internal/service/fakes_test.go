package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"chatstore/internal/domain"
	"chatstore/internal/domain/models"
	"chatstore/internal/domain/repositories"
)

// In-memory fakes implementing the repository interfaces with the same
// contracts as the postgres implementations (nil-on-absent lookups,
// ConflictError on duplicates, ErrNotFound on missing updates).

type fakeTxManager struct{}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeHasher struct{}

func (f *fakeHasher) Hash(password string) (string, error) {
	return "fakehash:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash != "fakehash:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("user %q already exists", user.Email),
			ResourceType: "user",
			ResourceID:   user.Email,
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeChatRepo struct {
	chats    map[string]*models.Chat
	messages *fakeMessageRepo
}

func newFakeChatRepo(messages *fakeMessageRepo) *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*models.Chat),
		messages: messages,
	}
}

func (f *fakeChatRepo) Create(_ context.Context, chat *models.Chat) error {
	if _, ok := f.chats[chat.ID]; ok {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("chat %s already exists", chat.ID),
			ResourceType: "chat",
			ResourceID:   chat.ID,
		}
	}
	stored := *chat
	stored.Messages = nil
	f.chats[chat.ID] = &stored
	return nil
}

func (f *fakeChatRepo) GetByID(_ context.Context, id string) (*models.Chat, error) {
	chat, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	copied := *chat
	return &copied, nil
}

func (f *fakeChatRepo) GetByIDWithMessages(ctx context.Context, id string) (*models.Chat, error) {
	chat, err := f.GetByID(ctx, id)
	if err != nil || chat == nil {
		return chat, err
	}
	messages, err := f.messages.ListByChat(ctx, id)
	if err != nil {
		return nil, err
	}
	chat.Messages = messages
	return chat, nil
}

func (f *fakeChatRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Chat, error) {
	chats := []models.Chat{}
	for _, chat := range f.chats {
		if chat.OwnerID == ownerID {
			chats = append(chats, *chat)
		}
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
	return chats, nil
}

func (f *fakeChatRepo) UpdateVisibility(_ context.Context, id, visibility string) (*models.Chat, error) {
	chat, ok := f.chats[id]
	if !ok {
		return nil, fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
	}
	chat.Visibility = visibility
	copied := *chat
	return &copied, nil
}

func (f *fakeChatRepo) Delete(_ context.Context, id string) (*models.Chat, error) {
	chat, ok := f.chats[id]
	if !ok {
		return nil, fmt.Errorf("chat %s: %w", id, domain.ErrNotFound)
	}
	delete(f.chats, id)
	copied := *chat
	return &copied, nil
}

type fakeMessageRepo struct {
	messages []models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) CreateBatch(_ context.Context, messages []models.Message) error {
	f.messages = append(f.messages, messages...)
	return nil
}

func (f *fakeMessageRepo) ListByChat(_ context.Context, chatID string) ([]models.Message, error) {
	messages := []models.Message{}
	for _, msg := range f.messages {
		if msg.ChatID == chatID {
			messages = append(messages, msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id string) (*models.Message, error) {
	for _, msg := range f.messages {
		if msg.ID == id {
			copied := msg
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMessageRepo) DeleteByChatAfter(_ context.Context, chatID string, ts time.Time) (int64, error) {
	var kept []models.Message
	var count int64
	for _, msg := range f.messages {
		if msg.ChatID == chatID && !msg.CreatedAt.Before(ts) {
			count++
			continue
		}
		kept = append(kept, msg)
	}
	f.messages = kept
	return count, nil
}

func (f *fakeMessageRepo) DeleteByChat(_ context.Context, chatID string) error {
	var kept []models.Message
	for _, msg := range f.messages {
		if msg.ChatID != chatID {
			kept = append(kept, msg)
		}
	}
	f.messages = kept
	return nil
}

type fakeVoteRepo struct {
	votes map[string]*models.Vote // keyed by chatID+"/"+messageID
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[string]*models.Vote)}
}

func (f *fakeVoteRepo) Upsert(_ context.Context, vote *models.Vote) error {
	copied := *vote
	f.votes[vote.ChatID+"/"+vote.MessageID] = &copied
	return nil
}

func (f *fakeVoteRepo) ListByChat(_ context.Context, chatID string) ([]models.Vote, error) {
	votes := []models.Vote{}
	for _, vote := range f.votes {
		if vote.ChatID == chatID {
			votes = append(votes, *vote)
		}
	}
	return votes, nil
}

func (f *fakeVoteRepo) DeleteByChat(_ context.Context, chatID string) error {
	for key, vote := range f.votes {
		if vote.ChatID == chatID {
			delete(f.votes, key)
		}
	}
	return nil
}

type fakeDocumentRepo struct {
	versions []models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{}
}

func (f *fakeDocumentRepo) CreateVersion(_ context.Context, doc *models.Document) error {
	for _, existing := range f.versions {
		if existing.ID == doc.ID && existing.CreatedAt.Equal(doc.CreatedAt) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document version (%s, %s) already exists", doc.ID, doc.CreatedAt),
				ResourceType: "document",
				ResourceID:   doc.ID,
			}
		}
	}
	f.versions = append(f.versions, *doc)
	return nil
}

func (f *fakeDocumentRepo) ListVersions(_ context.Context, id string) ([]models.Document, error) {
	docs := []models.Document{}
	for _, doc := range f.versions {
		if doc.ID == id {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

func (f *fakeDocumentRepo) GetLatest(ctx context.Context, id string) (*models.Document, error) {
	docs, _ := f.ListVersions(ctx, id)
	if len(docs) == 0 {
		return nil, nil
	}
	latest := docs[len(docs)-1]
	return &latest, nil
}

func (f *fakeDocumentRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Document, error) {
	latest := make(map[string]models.Document)
	for _, doc := range f.versions {
		if doc.OwnerID != ownerID {
			continue
		}
		if cur, ok := latest[doc.ID]; !ok || doc.CreatedAt.After(cur.CreatedAt) {
			latest[doc.ID] = doc
		}
	}
	docs := []models.Document{}
	for _, doc := range latest {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (f *fakeDocumentRepo) DeleteVersionsAfter(_ context.Context, id string, ts time.Time) (int64, error) {
	var kept []models.Document
	var count int64
	for _, doc := range f.versions {
		if doc.ID == id && doc.CreatedAt.After(ts) {
			count++
			continue
		}
		kept = append(kept, doc)
	}
	f.versions = kept
	return count, nil
}

type fakeSuggestionRepo struct {
	suggestions []models.Suggestion
}

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{}
}

func (f *fakeSuggestionRepo) CreateBatch(_ context.Context, suggestions []models.Suggestion) error {
	f.suggestions = append(f.suggestions, suggestions...)
	return nil
}

func (f *fakeSuggestionRepo) ListByDocument(_ context.Context, documentID string) ([]models.Suggestion, error) {
	suggestions := []models.Suggestion{}
	for _, s := range f.suggestions {
		if s.DocumentID == documentID {
			suggestions = append(suggestions, s)
		}
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if !suggestions[i].DocumentCreatedAt.Equal(suggestions[j].DocumentCreatedAt) {
			return suggestions[i].DocumentCreatedAt.After(suggestions[j].DocumentCreatedAt)
		}
		return suggestions[i].CreatedAt.Before(suggestions[j].CreatedAt)
	})
	return suggestions, nil
}

func (f *fakeSuggestionRepo) Resolve(_ context.Context, id string) (*models.Suggestion, error) {
	for i := range f.suggestions {
		if f.suggestions[i].ID == id {
			f.suggestions[i].IsResolved = true
			copied := f.suggestions[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound)
}

func (f *fakeSuggestionRepo) DeleteByDocumentAfter(_ context.Context, documentID string, ts time.Time) (int64, error) {
	var kept []models.Suggestion
	var count int64
	for _, s := range f.suggestions {
		if s.DocumentID == documentID && s.DocumentCreatedAt.After(ts) {
			count++
			continue
		}
		kept = append(kept, s)
	}
	f.suggestions = kept
	return count, nil
}
