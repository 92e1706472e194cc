package chat

import (
	"context"
	"sync"
	"time"

	"github.com/zhouzirui/codesoft-bot/backend/internal/model/chat"
)

// Store keeps the ordered turn log and the set of known users in memory.
// It is safe for concurrent use; nothing survives a restart.
type Store struct {
	mu    sync.RWMutex
	turns []chat.Turn
	users map[string]chat.UserRecord
	now   func() time.Time
	last  time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces the wall clock used to stamp turns and registrations.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore bootstraps an empty in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		turns: make([]chat.Turn, 0, 64),
		users: make(map[string]chat.UserRecord),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds a turn to the end of the log and returns it.
func (s *Store) Append(_ context.Context, userID, text string, isBot bool) chat.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := chat.Turn{
		UserID:    userID,
		Text:      text,
		IsBot:     isBot,
		Timestamp: s.stampLocked(),
	}
	s.turns = append(s.turns, turn)
	return turn
}

// HistoryFor returns every turn of userID in insertion order.
// Unknown users get an empty slice; the only error is a done context.
func (s *Store) HistoryFor(ctx context.Context, userID string) ([]chat.Turn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]chat.Turn, 0)
	for _, turn := range s.turns {
		if turn.UserID == userID {
			history = append(history, turn)
		}
	}
	return history, nil
}

// Register records userID the first time it is seen and reports whether a
// new record was created.
func (s *Store) Register(_ context.Context, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; ok {
		return false
	}
	s.users[userID] = chat.UserRecord{UserID: userID, LastSeen: s.stampLocked()}
	return true
}

// User looks up a registered user.
func (s *Store) User(_ context.Context, userID string) (chat.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.users[userID]
	return record, ok
}

// Len reports the number of stored turns across all users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// stampLocked returns a timestamp that never goes backwards within this store.
func (s *Store) stampLocked() time.Time {
	ts := s.now()
	if ts.Before(s.last) {
		ts = s.last
	}
	s.last = ts
	return ts
}
