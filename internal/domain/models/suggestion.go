package models

import (
	"time"
)

// Suggestion is pinned to the exact document version it was generated
// against via the composite (DocumentID, DocumentCreatedAt) foreign key.
// IsResolved is the only field that mutates after creation.
type Suggestion struct {
	ID                string    `json:"id" db:"id"`
	DocumentID        string    `json:"document_id" db:"document_id"`
	DocumentCreatedAt time.Time `json:"document_created_at" db:"document_created_at"`
	OwnerID           string    `json:"owner_id" db:"owner_id"`
	OriginalText      string    `json:"original_text" db:"original_text"`
	SuggestedText     string    `json:"suggested_text" db:"suggested_text"`
	Description       *string   `json:"description,omitempty" db:"description"`
	IsResolved        bool      `json:"is_resolved" db:"is_resolved"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// SuggestionDraft is the caller-supplied portion of a bulk insert; the
// version stamp and timestamps are resolved at save time.
type SuggestionDraft struct {
	OriginalText  string  `json:"original_text"`
	SuggestedText string  `json:"suggested_text"`
	Description   *string `json:"description,omitempty"`
}
