package main

import (
	"context"
	"fmt"

	"github.com/cdrscope/cdrscope/internal/domain/ports"
	auditsqlite "github.com/cdrscope/cdrscope/internal/infrastructure/auditlog/sqlite"
	"github.com/cdrscope/cdrscope/internal/infrastructure/backend/mongo"
	"github.com/cdrscope/cdrscope/internal/infrastructure/backend/snapshot"
	"github.com/cdrscope/cdrscope/internal/infrastructure/backend/sqlite"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
)

// buildBackend constructs the configured record backend. The choice is
// made once at startup; there is no per-request dispatch.
func buildBackend(ctx context.Context, cfg *config.Config) (ports.RecordBackend, error) {
	switch cfg.Backend.Driver {
	case config.DriverSnapshot:
		backend, err := snapshot.New(cfg.Backend.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("creating snapshot backend: %w", err)
		}
		return backend, nil

	case config.DriverMongo:
		backend, err := mongo.New(ctx, cfg.Backend.Mongo)
		if err != nil {
			return nil, fmt.Errorf("creating mongo backend: %w", err)
		}
		return backend, nil

	case config.DriverSQLite:
		backend, err := sqlite.New(cfg.Backend.SQLite)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite backend: %w", err)
		}
		if err := backend.EnsureSchema(ctx); err != nil {
			backend.Close()
			return nil, fmt.Errorf("ensuring records schema: %w", err)
		}
		return backend, nil

	default:
		return nil, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
	}
}

func buildAuditStore(ctx context.Context, cfg *config.Config) (ports.AuditStore, error) {
	store, err := auditsqlite.NewStore(cfg.Audit)
	if err != nil {
		return nil, fmt.Errorf("creating audit store: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensuring audit schema: %w", err)
	}
	return store, nil
}
