// Package presence tracks who is connected to a shared arcade server and
// what they are playing.
package presence

import (
	"crypto/rand"
	"encoding/base32"
	"sort"
	"strings"
	"sync"
	"time"
)

// SessionID uniquely identifies a connected session (e.g., an SSH connection).
type SessionID string

// Session describes one connected player.
type Session struct {
	ID     SessionID
	User   string
	Remote string
	GameID string // Empty while in the menus
	Since  time.Time
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[SessionID]*Session
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[SessionID]*Session),
		now:      time.Now,
	}
}

// Join registers a new session and returns its ID.
func (r *Registry) Join(user, remote string) SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := newSessionID()
	for r.sessions[id] != nil {
		id = newSessionID()
	}
	r.sessions[id] = &Session{
		ID:     id,
		User:   user,
		Remote: remote,
		Since:  r.now(),
	}
	return id
}

// Leave removes a session from the registry. Unknown IDs are ignored.
func (r *Registry) Leave(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// SetGame records which game a session is playing; an empty ID means the
// player went back to the menus.
func (r *Registry) SetGame(id SessionID, gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.GameID = gameID
	}
}

// Get retrieves a copy of a session by ID.
func (r *Registry) Get(id SessionID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Count returns the number of connected sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Playing returns how many sessions are in the given game.
func (r *Registry) Playing(gameID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.sessions {
		if s.GameID == gameID {
			n++
		}
	}
	return n
}

// List returns copies of all sessions, oldest first.
func (r *Registry) List() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Since.Equal(result[j].Since) {
			return result[i].ID < result[j].ID
		}
		return result[i].Since.Before(result[j].Since)
	})
	return result
}

// newSessionID creates a random 8-character identifier.
func newSessionID() SessionID {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return SessionID(strings.ToLower(base32.StdEncoding.EncodeToString(b)))
}
