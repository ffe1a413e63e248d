// Package sqlite provides the relational implementation of the
// RecordBackend interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
)

const driverName = "sqlite"

// Backend implements ports.RecordBackend against a SQLite database. Device
// attributes are stored as nullable columns; NULL never matches an equality
// constraint, which reproduces the pipeline's missing-attribute exclusion.
type Backend struct {
	db *sql.DB
}

// New opens the database at the configured path.
func New(cfg config.SQLiteConfig) (*Backend, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Backend{db: db}, nil
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.db.Close()
}

// EnsureSchema creates the records table if it doesn't exist.
func (b *Backend) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY,
		origination_time INTEGER NOT NULL,
		cluster_id TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL DEFAULT '',
		device_phone TEXT,
		device_voicemail TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_records_origination ON records(origination_time);
	`

	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Load bulk-inserts records, replacing rows with matching IDs. Used by
// tooling and tests to seed the backend's data source.
func (b *Backend) Load(ctx context.Context, records []entities.Record) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO records (id, origination_time, cluster_id, user_id, device_phone, device_voicemail)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID,
			r.OriginationTime,
			r.ClusterID,
			r.UserID,
			nullable(r.Devices.Phone),
			nullable(r.Devices.Voicemail),
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load: %w", err)
	}
	return nil
}

// Find translates the criteria into a parameterized query: the mandatory
// range first, then one appended equality clause per active constraint.
// Values are always bound, never interpolated.
func (b *Backend) Find(ctx context.Context, criteria entities.Criteria) ([]entities.Record, error) {
	query := `
		SELECT id, origination_time, cluster_id, user_id, device_phone, device_voicemail
		FROM records
		WHERE origination_time BETWEEN ? AND ?
	`
	args := []any{criteria.Start, criteria.End}

	if criteria.Phone != "" {
		query += " AND device_phone = ?"
		args = append(args, criteria.Phone)
	}
	if criteria.Voicemail != "" {
		query += " AND device_voicemail = ?"
		args = append(args, criteria.Voicemail)
	}
	if criteria.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, criteria.UserID)
	}
	if criteria.ClusterID != "" {
		query += " AND cluster_id = ?"
		args = append(args, criteria.ClusterID)
	}

	query += " ORDER BY id"

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &entities.BackendError{Driver: driverName, Err: fmt.Errorf("querying records: %w", err)}
	}
	defer rows.Close()

	var records []entities.Record
	for rows.Next() {
		var (
			r                entities.Record
			phone, voicemail sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.OriginationTime, &r.ClusterID, &r.UserID, &phone, &voicemail); err != nil {
			return nil, &entities.BackendError{Driver: driverName, Err: fmt.Errorf("scanning record: %w", err)}
		}
		r.Devices = entities.Devices{Phone: phone.String, Voicemail: voicemail.String}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &entities.BackendError{Driver: driverName, Err: fmt.Errorf("iterating records: %w", err)}
	}

	return records, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
