package ports

import (
	"context"

	"aeon/models"
)

// AuditLedger records administrative events (session lifecycle, scoring
// requests, deletions) for the admin log and CSV export. Ledger failures
// must never fail the request that produced the event.
type AuditLedger interface {
	Append(ctx context.Context, event models.AuditEvent) error
	All(ctx context.Context) ([]models.AuditEvent, error)
}
