package ports

import (
	"context"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// AuditStore persists audit log entries. Append is write-only: entries are
// never updated or deleted. The store must support concurrent appends
// without losing entries.
type AuditStore interface {
	// Append durably writes one entry. The store assigns the ID and the
	// timestamp.
	Append(ctx context.Context, entry entities.AuditLogEntry) error

	// List returns entries in insertion order, skipping the first skip
	// entries. No page-size cap is imposed here.
	List(ctx context.Context, skip int) ([]entities.AuditLogEntry, error)

	// Close releases the store's resources.
	Close() error
}
