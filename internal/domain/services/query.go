// Package services contains the domain services: token issuance and
// validation, record querying, and audit recording.
package services

import (
	"context"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/domain/ports"
)

// QueryService dispatches criteria to the configured record backend. It is
// stateless; the backend is fixed for the lifetime of the process.
type QueryService struct {
	backend ports.RecordBackend
}

// NewQueryService creates a new query service.
func NewQueryService(backend ports.RecordBackend) *QueryService {
	return &QueryService{backend: backend}
}

// Find validates the criteria and returns the matching records. An empty
// result fails with entities.ErrNoRecords: at the API boundary an empty
// result is indistinguishable from "no such data". Either the full
// filtered sequence is returned or the call fails as a whole.
func (s *QueryService) Find(ctx context.Context, criteria entities.Criteria) ([]entities.Record, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	records, err := s.backend.Find(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, entities.ErrNoRecords
	}
	return records, nil
}
