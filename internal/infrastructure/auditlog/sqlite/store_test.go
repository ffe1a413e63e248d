package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
	"github.com/cdrscope/cdrscope/internal/infrastructure/config"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(config.AuditConfig{Path: filepath.Join(t.TempDir(), "audit.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := NewStore(config.AuditConfig{})
		require.Error(t, err)
	})

	t.Run("schema is idempotent", func(t *testing.T) {
		store := setupTestStore(t)
		require.NoError(t, store.EnsureSchema(context.Background()))
	})
}

func TestStore_AppendAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entries := []entities.AuditLogEntry{
		{Path: "/token", Method: "POST", StatusCode: 200, ClientIP: "10.0.0.1", UserAgent: "curl/8.0"},
		{Path: "/records", Method: "GET", StatusCode: 404, ClientIP: "10.0.0.1", UserAgent: "curl/8.0"},
		{Path: "/records", Method: "GET", StatusCode: 401, ClientIP: "10.0.0.2", UserAgent: entities.UnknownUserAgent},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
	}

	t.Run("insertion order with assigned ids", func(t *testing.T) {
		got, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, e := range got {
			assert.Equal(t, int64(i+1), e.ID)
			assert.Equal(t, entries[i].Path, e.Path)
			assert.Equal(t, entries[i].StatusCode, e.StatusCode)
			assert.Equal(t, entries[i].ClientIP, e.ClientIP)
			assert.Equal(t, entries[i].UserAgent, e.UserAgent)
		}
	})

	t.Run("timestamps are assigned at persistence and non-decreasing", func(t *testing.T) {
		got, err := store.List(ctx, 0)
		require.NoError(t, err)
		for i, e := range got {
			assert.False(t, e.Timestamp.IsZero())
			if i > 0 {
				assert.False(t, e.Timestamp.Before(got[i-1].Timestamp))
			}
		}
	})

	t.Run("skip", func(t *testing.T) {
		got, err := store.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("skip past the end", func(t *testing.T) {
		got, err := store.List(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_ConcurrentAppends(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Append(ctx, entities.AuditLogEntry{
				Path: "/records", Method: "GET", StatusCode: 200,
				ClientIP: "10.0.0.1", UserAgent: "curl/8.0",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
