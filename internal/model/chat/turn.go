package chat

import "time"

// Turn records one message event, either from the end user or from the bot.
type Turn struct {
	UserID    string    `json:"user_id"`
	Text      string    `json:"message"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// UserRecord marks a user the store has seen.
// LastSeen is set on registration and never refreshed afterwards.
type UserRecord struct {
	UserID   string    `json:"user_id"`
	LastSeen time.Time `json:"last_seen"`
}
