package ports

import (
	"time"

	"aeon/models"
)

// SessionStore owns the token → session mapping. Expiry is evaluated
// lazily against the store's TTL on every access; expired entries are kept
// until an administrative delete or process restart.
type SessionStore interface {
	// Create generates a fresh token and inserts an empty session
	Create() *models.Session

	// Get returns the session regardless of expiry state
	Get(token string) (*models.Session, error)

	// GetActive returns the session, failing with SESSION_EXPIRED when the
	// TTL has elapsed
	GetActive(token string) (*models.Session, error)

	// Delete removes the entry; idempotent
	Delete(token string)

	// Snapshot returns all sessions for administrative iteration
	Snapshot() []*models.Session

	// Count returns the number of stored sessions
	Count() int

	// TTL returns the configured session lifetime
	TTL() time.Duration
}
