package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// AuditStore is a mock implementation of ports.AuditStore. It assigns IDs
// and timestamps the way a durable store would and is safe for concurrent
// appends.
type AuditStore struct {
	Err error

	mu      sync.Mutex
	entries []entities.AuditLogEntry
}

// Append stores one entry, assigning the next ID and the current time.
func (m *AuditStore) Append(_ context.Context, entry entities.AuditLogEntry) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = int64(len(m.entries) + 1)
	entry.Timestamp = time.Now().UTC()
	m.entries = append(m.entries, entry)
	return nil
}

// List returns entries in insertion order, skipping the first skip entries.
func (m *AuditStore) List(_ context.Context, skip int) ([]entities.AuditLogEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if skip >= len(m.entries) {
		return nil, nil
	}
	out := make([]entities.AuditLogEntry, len(m.entries)-skip)
	copy(out, m.entries[skip:])
	return out, nil
}

// Close closes the store.
func (m *AuditStore) Close() error {
	return nil
}

// Entries returns a copy of everything appended so far.
func (m *AuditStore) Entries() []entities.AuditLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.AuditLogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
