// Package snapshot provides the flat in-memory implementation of the
// RecordBackend interface.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
)

// Backend holds the entire record set in memory, loaded once at startup.
// The slice is immutable after load; if hot-reload is ever added the
// replacement must swap the slice reference atomically, never mutate it.
type Backend struct {
	records []entities.Record
}

// New loads the snapshot from the configured JSON file.
func New(cfg config.SnapshotConfig) (*Backend, error) {
	if cfg.Path == "" {
		return nil, errors.New("snapshot path is required")
	}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var records []entities.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}

	return &Backend{records: records}, nil
}

// NewFromRecords creates a backend over an already-loaded record set.
func NewFromRecords(records []entities.Record) *Backend {
	return &Backend{records: records}
}

// Find applies the criteria's filter pipeline with a linear scan. O(n) per
// query; the snapshot is bounded and read-only so this is acceptable.
func (b *Backend) Find(_ context.Context, criteria entities.Criteria) ([]entities.Record, error) {
	return entities.Apply(b.records, criteria.Filters()...), nil
}

// Len reports the number of loaded records.
func (b *Backend) Len() int {
	return len(b.records)
}

// Close is a no-op; the snapshot owns no external resources.
func (b *Backend) Close() error {
	return nil
}
