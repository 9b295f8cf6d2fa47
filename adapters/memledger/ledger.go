package memledger

import (
	"context"
	"sync"

	"aeon/models"
	"aeon/ports"
)

// maxEvents bounds the in-memory log so a long-lived process cannot grow
// without limit; the oldest entries are dropped first.
const maxEvents = 10000

// Ledger is the in-memory audit ledger used when no DATABASE_URL is
// configured
type Ledger struct {
	mu     sync.RWMutex
	events []models.AuditEvent
}

// New creates an empty in-memory ledger
func New() *Ledger {
	return &Ledger{}
}

var _ ports.AuditLedger = (*Ledger)(nil)

// Append adds an event to the log
func (l *Ledger) Append(_ context.Context, event models.AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	if len(l.events) > maxEvents {
		l.events = l.events[len(l.events)-maxEvents:]
	}
	return nil
}

// All returns a copy of the recorded events in append order
func (l *Ledger) All(_ context.Context) ([]models.AuditEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := make([]models.AuditEvent, len(l.events))
	copy(events, l.events)
	return events, nil
}
