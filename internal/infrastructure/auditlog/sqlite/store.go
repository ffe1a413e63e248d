// Package sqlite provides the durable SQLite implementation of the
// AuditStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Store implements ports.AuditStore. Each append is an independent
// transaction; WAL mode and a busy timeout let concurrently completing
// requests append without lost entries.
type Store struct {
	db *sql.DB
}

// NewStore opens the audit database at the configured path.
func NewStore(cfg config.AuditConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("audit path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the audit_logs table if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		method TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		client_ip TEXT NOT NULL,
		user_agent TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Append durably writes one entry. The ID comes from the AUTOINCREMENT
// sequence and the timestamp is assigned here, at persistence.
func (s *Store) Append(ctx context.Context, entry entities.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (path, method, status_code, timestamp, client_ip, user_agent)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.Path,
		entry.Method,
		entry.StatusCode,
		timeNow().UTC(),
		entry.ClientIP,
		entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// List returns entries in insertion order, skipping the first skip entries.
func (s *Store) List(ctx context.Context, skip int) ([]entities.AuditLogEntry, error) {
	query := `
		SELECT id, path, method, status_code, timestamp, client_ip, user_agent
		FROM audit_logs
		ORDER BY id
		LIMIT -1 OFFSET ?
	`
	rows, err := s.db.QueryContext(ctx, query, skip)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditLogEntry
	for rows.Next() {
		var e entities.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.Path, &e.Method, &e.StatusCode, &e.Timestamp, &e.ClientIP, &e.UserAgent); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit log: %w", err)
	}

	return entries, nil
}
