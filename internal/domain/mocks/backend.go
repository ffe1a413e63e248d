// Package mocks provides hand-written mock implementations of the domain
// ports for use in tests.
package mocks

import (
	"context"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// RecordBackend is a mock implementation of ports.RecordBackend. It applies
// the real filter pipeline over an in-memory record set, so it behaves like
// a minimal snapshot backend.
type RecordBackend struct {
	Records []entities.Record
	Err     error
}

// Find returns the records matching the criteria.
func (m *RecordBackend) Find(_ context.Context, criteria entities.Criteria) ([]entities.Record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return entities.Apply(m.Records, criteria.Filters()...), nil
}

// Close closes the backend.
func (m *RecordBackend) Close() error {
	return nil
}
