// Package ports defines the interfaces between the domain and infrastructure.
package ports

import (
	"context"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// RecordBackend is the storage-side query contract, implemented once per
// storage technology. All implementations must return the same result set
// for the same logical data, and must report their own failures as
// *entities.BackendError. The active backend is chosen at startup; there
// is no per-request dispatch.
type RecordBackend interface {
	// Find returns the records matching the criteria. An empty result is
	// returned as an empty (or nil) slice, not an error; the not-found
	// policy belongs to the query service.
	Find(ctx context.Context, criteria entities.Criteria) ([]entities.Record, error)

	// Close releases the backend's resources.
	Close() error
}
