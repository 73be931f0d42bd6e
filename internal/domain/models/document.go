package models

import (
	"time"
)

// Document is one row of an append-only version chain. Rows sharing an ID
// are versions of the same document; identity is the pair (ID, CreatedAt)
// and the current version is the one with the latest CreatedAt. Edits
// append rows, they never mutate existing ones.
type Document struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Title     string    `json:"title" db:"title"`
	Content   *string   `json:"content" db:"content"`
}
