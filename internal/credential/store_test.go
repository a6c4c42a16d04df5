package credential

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/api"
)

func testCredential() *Credential {
	return &Credential{
		AccessToken: "token-abc",
		User: api.User{
			ID:       7,
			Email:    "cashier@example.com",
			Role:     api.RoleCashier,
			IsActive: true,
		},
		ExpiresAt: "2026-09-01T00:00:00Z",
	}
}

func TestFileStore(t *testing.T) {
	t.Run("round-trips a credential", func(t *testing.T) {
		store := NewFileStoreAt(filepath.Join(t.TempDir(), "credential.json"))

		require.NoError(t, store.Save(testCredential()))

		got, err := store.Get()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, testCredential(), got)
	})

	t.Run("absent file means signed out", func(t *testing.T) {
		store := NewFileStoreAt(filepath.Join(t.TempDir(), "credential.json"))

		got, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, got)

		_, ok := store.Token()
		assert.False(t, ok)
	})

	t.Run("corrupt file means signed out, not an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credential.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		store := NewFileStoreAt(path)
		got, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("record without a token means signed out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credential.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"user":{"id":1}}`), 0o600))

		store := NewFileStoreAt(path)
		got, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clear removes the file and is idempotent", func(t *testing.T) {
		store := NewFileStoreAt(filepath.Join(t.TempDir(), "credential.json"))
		require.NoError(t, store.Save(testCredential()))

		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())

		got, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("file is user-only readable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credential.json")
		store := NewFileStoreAt(path)
		require.NoError(t, store.Save(testCredential()))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("refuses to save without a token", func(t *testing.T) {
		store := NewFileStoreAt(filepath.Join(t.TempDir(), "credential.json"))
		assert.Error(t, store.Save(&Credential{}))
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("round-trips a credential", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(testCredential()))

		got, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, testCredential(), got)

		token, ok := store.Token()
		require.True(t, ok)
		assert.Equal(t, "token-abc", token)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(testCredential()))

		got, err := store.Get()
		require.NoError(t, err)
		got.AccessToken = "mutated"

		again, err := store.Get()
		require.NoError(t, err)
		assert.Equal(t, "token-abc", again.AccessToken)
	})

	t.Run("clear erases the credential", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(testCredential()))
		require.NoError(t, store.Clear())

		got, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
