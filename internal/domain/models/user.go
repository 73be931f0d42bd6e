package models

import (
	"time"
)

// User owns chats, documents and suggestions. PasswordHash is the bcrypt
// hash of the plaintext credential; the plaintext is never stored.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
