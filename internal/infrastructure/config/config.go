// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8000"
	// DefaultSecretKey is an insecure placeholder; serve warns when it is
	// still in use.
	DefaultSecretKey = "defaultsecretkey"
	// DefaultAlgorithm is the only supported signing algorithm.
	DefaultAlgorithm = "HS256"
)

// Supported backend drivers.
const (
	DriverSnapshot = "snapshot"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Auth    AuthConfig    `yaml:"auth,omitempty"`
	Backend BackendConfig `yaml:"backend,omitempty"`
	Audit   AuditConfig   `yaml:"audit,omitempty"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// AuthConfig holds token signing and credential configuration.
type AuthConfig struct {
	SecretKey string `yaml:"secret_key,omitempty"`
	Algorithm string `yaml:"algorithm,omitempty"`
	// TokenTTLMinutes enables token expiry when greater than zero. Zero
	// issues tokens without an expiry claim.
	TokenTTLMinutes int    `yaml:"token_ttl_minutes,omitempty"`
	UsersFile       string `yaml:"users_file,omitempty"`
}

// BackendConfig selects and configures the active record backend.
type BackendConfig struct {
	Driver   string         `yaml:"driver,omitempty"`
	Snapshot SnapshotConfig `yaml:"snapshot,omitempty"`
	Mongo    MongoConfig    `yaml:"mongo,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
}

// SnapshotConfig holds configuration for the flat snapshot backend.
type SnapshotConfig struct {
	// Path is the JSON file holding the full record set.
	Path string `yaml:"path,omitempty"`
}

// MongoConfig holds configuration for the document store backend.
type MongoConfig struct {
	URI        string `yaml:"uri,omitempty"`
	Database   string `yaml:"database,omitempty"`
	Collection string `yaml:"collection,omitempty"`
}

// SQLiteConfig holds configuration for the relational backend and the
// audit log store.
type SQLiteConfig struct {
	Path string `yaml:"path,omitempty"`
}

// AuditConfig holds configuration for the audit trail.
type AuditConfig struct {
	Path      string `yaml:"path,omitempty"`
	QueueSize int    `yaml:"queue_size,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Auth: AuthConfig{
			SecretKey: DefaultSecretKey,
			Algorithm: DefaultAlgorithm,
		},
		Backend: BackendConfig{
			Driver:   DriverSnapshot,
			Snapshot: SnapshotConfig{Path: "data.json"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "cdrscope",
				Collection: "records",
			},
			SQLite: SQLiteConfig{Path: "records.db"},
		},
		Audit: AuditConfig{Path: "audit.db"},
	}
}

// Load loads configuration from path, falling back to defaults when path is
// empty, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. The backend
// selection is applied before the connection string so BACKEND_CONNECTION
// lands on the active driver.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Auth.SecretKey = v
	}
	if v := os.Getenv("ALGORITHM"); v != "" {
		c.Auth.Algorithm = v
	}
	if v := os.Getenv("BACKEND_SELECTION"); v != "" {
		c.Backend.Driver = v
	}
	if v := os.Getenv("BACKEND_CONNECTION"); v != "" {
		switch c.Backend.Driver {
		case DriverMongo:
			c.Backend.Mongo.URI = v
		case DriverSQLite:
			c.Backend.SQLite.Path = v
		default:
			c.Backend.Snapshot.Path = v
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Auth.Algorithm != DefaultAlgorithm {
		return fmt.Errorf("unsupported signing algorithm %q (only %s is supported)", c.Auth.Algorithm, DefaultAlgorithm)
	}
	switch c.Backend.Driver {
	case DriverSnapshot, DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unknown backend driver %q", c.Backend.Driver)
	}
	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("token_ttl_minutes must not be negative")
	}
	return nil
}

// TokenTTL returns the configured token lifetime, zero when expiry is
// disabled.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}
