package memstore

import (
	"sync"
	"time"

	"aeon/internal/errors"
	"aeon/models"
	"aeon/ports"

	"github.com/google/uuid"
)

// SessionStore is the in-memory token → session mapping. Session state is
// deliberately volatile: a process restart clears everything.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
}

// New creates an empty store with the given session TTL
func New(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// NewWithClock creates a store with an injectable clock for expiry tests
func NewWithClock(ttl time.Duration, now func() time.Time) *SessionStore {
	store := New(ttl)
	store.now = now
	return store
}

var _ ports.SessionStore = (*SessionStore)(nil)

// Create generates a fresh 128-bit random token and inserts an empty session
func (s *SessionStore) Create() *models.Session {
	token := uuid.NewString()
	session := models.NewSession(token)

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// Get returns the session for a token regardless of expiry state
func (s *SessionStore) Get(token string) (*models.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.SessionNotFound(token)
	}
	return session, nil
}

// GetActive returns the session, distinguishing unknown tokens from
// expired-but-present ones. Expired entries stay in the map.
func (s *SessionStore) GetActive(token string) (*models.Session, error) {
	session, err := s.Get(token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(s.now().UTC(), s.ttl) {
		return nil, errors.SessionExpired(token)
	}
	return session, nil
}

// Delete removes the entry; no error if absent
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Snapshot returns all sessions for administrative iteration
func (s *SessionStore) Snapshot() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*models.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		all = append(all, session)
	}
	return all
}

// Count returns the number of stored sessions, expired ones included
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// TTL returns the configured session lifetime
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}
