package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("flat map of username to hash", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.yaml")
		content := "user@example.com: $2a$10$abcdefghijklmnopqrstuv\nother@example.com: $2a$10$zyxwvutsrqponmlkjihgfe\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		store, err := Load(path)
		require.NoError(t, err)

		cred, err := store.Find(context.Background(), "user@example.com")
		require.NoError(t, err)
		require.NotNil(t, cred)
		assert.Equal(t, "user@example.com", cred.Username)
		assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cred.PasswordHash)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.yaml")
		require.NoError(t, os.WriteFile(path, []byte("[not: a: map"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestStore_Find(t *testing.T) {
	store := NewStore(map[string]string{"user@example.com": "hash"})

	t.Run("unknown user is nil without error", func(t *testing.T) {
		cred, err := store.Find(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, cred)
	})
}
