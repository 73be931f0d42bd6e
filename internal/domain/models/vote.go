package models

// Vote directions accepted by the vote store.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote is keyed by the composite (ChatID, MessageID); re-voting updates the
// existing row, never duplicates it.
type Vote struct {
	ChatID    string `json:"chat_id" db:"chat_id"`
	MessageID string `json:"message_id" db:"message_id"`
	IsUpvoted bool   `json:"is_upvoted" db:"is_upvoted"`
}
