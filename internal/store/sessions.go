// internal/store/sessions.go
//
// In-memory persistence for play sessions.
// Sessions are ephemeral bookkeeping: which puzzle a player is on, when
// they started, and how many guesses and checks they have spent. State
// is lost when the process restarts, which is acceptable; finished
// rounds land in the results table.
//
// Characteristics:
//   - Keyed by session ID in a sharded concurrent map, so request
//     handlers never serialize on one lock.
//   - ErrNotFound for unknown IDs on Get().

package store

import (
	"context"
	"errors"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Session tracks one player's run at one puzzle.
type Session struct {
	ID        string    `json:"id"`
	PuzzleID  string    `json:"puzzleId"`
	PlayerID  string    `json:"playerId"`
	StartedAt time.Time `json:"startedAt"`
	Guesses   int       `json:"guesses"`
	Checks    int       `json:"checks"`
	Solved    bool      `json:"solved"`
}

// SessionStore defines the persistence interface for play sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type SessionStore interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Session, error)
}

type memorySessions struct {
	m cmap.ConcurrentMap[string, *Session]
}

// NewMemorySessions constructs the in-memory SessionStore.
func NewMemorySessions() SessionStore {
	return &memorySessions{m: cmap.New[*Session]()}
}

func (s *memorySessions) Save(_ context.Context, sess *Session) error {
	s.m.Set(sess.ID, sess)
	return nil
}

func (s *memorySessions) Get(_ context.Context, id string) (*Session, error) {
	if sess, ok := s.m.Get(id); ok {
		return sess, nil
	}
	return nil, ErrNotFound
}
