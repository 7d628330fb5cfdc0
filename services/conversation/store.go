// Package conversation holds the in-memory chat history shared as context
// across provider calls.
package conversation

import (
	"sync"
	"time"
)

// Role identifies the author of a conversation turn
type Role string

const (
	// RoleUser marks a turn authored by the user
	RoleUser Role = "user"

	// RoleAssistant marks a turn authored by the assistant
	RoleAssistant Role = "assistant"
)

// Turn represents a single message in the conversation history.
// Turns are never mutated or reordered after creation.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTurn creates a turn stamped with the current time
func NewTurn(role Role, content string) Turn {
	return Turn{Role: role, Content: content, CreatedAt: time.Now()}
}

// Store is a bounded, ordered sequence of turns. When an append would
// exceed the cap, the oldest turns are evicted first.
//
// Store is safe for concurrent use. Each append is atomic with respect
// to snapshots and other appends.
type Store struct {
	mu    sync.Mutex
	turns []Turn
	cap   int
}

// NewStore creates a store bounded to capacity turns. A non-positive
// capacity falls back to 20.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = 20
	}
	return &Store{
		turns: make([]Turn, 0, capacity),
		cap:   capacity,
	}
}

// Append adds a turn to the end of the history, evicting from the front
// if the cap would be exceeded.
func (s *Store) Append(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(turn)
}

// AppendExchange adds a user turn followed by an assistant turn under a
// single critical section, so concurrent exchanges never interleave.
func (s *Store) AppendExchange(user, assistant Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(user)
	s.appendLocked(assistant)
}

func (s *Store) appendLocked(turn Turn) {
	s.turns = append(s.turns, turn)
	if excess := len(s.turns) - s.cap; excess > 0 {
		s.turns = append(s.turns[:0], s.turns[excess:]...)
	}
}

// Snapshot returns a copy of the current turns in order. The copy is
// independent of later mutations.
func (s *Store) Snapshot() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Last returns a copy of the most recent n turns, or all turns if fewer
// than n are held.
func (s *Store) Last(n int) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return nil
	}
	if n > len(s.turns) {
		n = len(s.turns)
	}
	out := make([]Turn, n)
	copy(out, s.turns[len(s.turns)-n:])
	return out
}

// Len returns the number of turns currently held
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// Cap returns the maximum number of turns the store retains
func (s *Store) Cap() int {
	return s.cap
}

// Clear resets the history to empty. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = s.turns[:0]
}
