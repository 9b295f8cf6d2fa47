package postgres

import (
	"context"

	"aeon/internal/errors"
	"aeon/models"
	"aeon/ports"

	"github.com/jmoiron/sqlx"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id         BIGSERIAL PRIMARY KEY,
	event_time TIMESTAMPTZ NOT NULL,
	action     TEXT NOT NULL,
	details    JSONB NOT NULL DEFAULT '{}'
)`

// AuditLedger persists audit events to PostgreSQL. Only the audit trail is
// durable; session state stays in process memory.
type AuditLedger struct {
	db *sqlx.DB
}

// NewAuditLedger creates the ledger and ensures its schema exists
func NewAuditLedger(db *sqlx.DB) (*AuditLedger, error) {
	if _, err := db.Exec(auditSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create audit_events table")
	}
	return &AuditLedger{db: db}, nil
}

var _ ports.AuditLedger = (*AuditLedger)(nil)

// Append inserts one audit event
func (l *AuditLedger) Append(ctx context.Context, event models.AuditEvent) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO audit_events (event_time, action, details)
		VALUES ($1, $2, $3)
	`, event.Time, event.Action, event.Details)
	if err != nil {
		return errors.Wrap(err, "failed to append audit event")
	}
	return nil
}

// All returns all recorded events in append order
func (l *AuditLedger) All(ctx context.Context) ([]models.AuditEvent, error) {
	rows, err := l.db.QueryxContext(ctx, `
		SELECT event_time, action, details
		FROM audit_events
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query audit events")
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var event models.AuditEvent
		if err := rows.Scan(&event.Time, &event.Action, &event.Details); err != nil {
			return nil, errors.Wrap(err, "failed to scan audit event")
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
