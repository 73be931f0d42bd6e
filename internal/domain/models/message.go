package models

import (
	"encoding/json"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message belongs to a chat. Content is an opaque structured payload
// (stored as JSONB); this layer never interprets it.
type Message struct {
	ID        string          `json:"id" db:"id"`
	ChatID    string          `json:"chat_id" db:"chat_id"`
	Role      string          `json:"role" db:"role"`
	Content   json.RawMessage `json:"content" db:"content"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// MessageDraft is the caller-supplied portion of a bulk insert. CreatedAt
// is optional; the zero value gets stamped at save time.
type MessageDraft struct {
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}
