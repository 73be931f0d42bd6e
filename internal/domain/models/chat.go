package models

import (
	"time"
)

// Chat visibility values.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// Chat represents a conversation owned by a user. Visibility is the only
// field that mutates after creation.
type Chat struct {
	ID         string    `json:"id" db:"id"`
	OwnerID    string    `json:"owner_id" db:"owner_id"`
	Title      string    `json:"title" db:"title"`
	Visibility string    `json:"visibility" db:"visibility"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Messages is populated only by the eager-loading variants.
	Messages []Message `json:"messages,omitempty"`
}
