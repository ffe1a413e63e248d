package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultAddr, cfg.Server.Addr)
		assert.Equal(t, DefaultSecretKey, cfg.Auth.SecretKey)
		assert.Equal(t, DriverSnapshot, cfg.Backend.Driver)
		assert.Zero(t, cfg.TokenTTL())
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  addr: ":9000"
auth:
  secret_key: file-secret
  token_ttl_minutes: 30
backend:
  driver: sqlite
  sqlite:
    path: /var/lib/cdrscope/records.db
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "file-secret", cfg.Auth.SecretKey)
		assert.Equal(t, DriverSQLite, cfg.Backend.Driver)
		assert.Equal(t, "/var/lib/cdrscope/records.db", cfg.Backend.SQLite.Path)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Run("secret key", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "env-secret")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	})

	t.Run("backend selection directs the connection string", func(t *testing.T) {
		t.Setenv("BACKEND_SELECTION", DriverSQLite)
		t.Setenv("BACKEND_CONNECTION", "/tmp/records.db")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.Backend.Driver)
		assert.Equal(t, "/tmp/records.db", cfg.Backend.SQLite.Path)
	})

	t.Run("connection string for mongo", func(t *testing.T) {
		t.Setenv("BACKEND_SELECTION", DriverMongo)
		t.Setenv("BACKEND_CONNECTION", "mongodb://db:27017")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "mongodb://db:27017", cfg.Backend.Mongo.URI)
	})

	t.Run("env wins over file", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  secret_key: file-secret\n")
		t.Setenv("SECRET_KEY", "env-secret")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	})
}

func TestValidate(t *testing.T) {
	t.Run("only HS256 is supported", func(t *testing.T) {
		t.Setenv("ALGORITHM", "RS256")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RS256")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("BACKEND_SELECTION", "oracle")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("negative ttl", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  token_ttl_minutes: -5\n")
		_, err := Load(path)
		require.Error(t, err)
	})
}
