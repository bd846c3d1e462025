package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	t.Run("missing token loads as empty", func(t *testing.T) {
		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "  header.payload.sig \n"))

		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "header.payload.sig", token)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("rejects empty token", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, "   "))
	})

	t.Run("clear removes the token", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		token, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}
