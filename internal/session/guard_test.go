package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/credential"
)

// fakeProfileFetcher counts calls so tests can assert the zero-network-call
// path and the exactly-one-resolution rule.
type fakeProfileFetcher struct {
	calls int
	user  *api.User
	err   error
}

func (f *fakeProfileFetcher) Me(ctx context.Context) (*api.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestResolve(t *testing.T) {
	t.Run("absent credential redirects with zero network calls", func(t *testing.T) {
		store := credential.NewMemoryStore()
		fetcher := &fakeProfileFetcher{user: &api.User{ID: 1}}
		guard := NewGuard(store, fetcher)

		res, err := guard.Resolve(context.Background())
		require.NoError(t, err)

		assert.Equal(t, StateRedirecting, res.State)
		assert.Nil(t, res.Principal)
		assert.Empty(t, res.Notice, "a never-signed-in user gets no expiry notice")
		assert.Equal(t, 0, fetcher.calls)
	})

	t.Run("valid session refreshes the profile and keeps the token", func(t *testing.T) {
		store := credential.NewMemoryStore()
		require.NoError(t, store.Save(&credential.Credential{
			AccessToken: "token-123",
			User:        api.User{ID: 1, Email: "old@example.com", Role: api.RoleCashier},
			ExpiresAt:   "2026-09-01T00:00:00Z",
		}))

		fresh := &api.User{ID: 1, Email: "new@example.com", Role: api.RoleAdmin, IsActive: true}
		fetcher := &fakeProfileFetcher{user: fresh}
		guard := NewGuard(store, fetcher)

		res, err := guard.Resolve(context.Background())
		require.NoError(t, err)

		assert.Equal(t, StateAuthenticated, res.State)
		require.NotNil(t, res.Principal)
		assert.Equal(t, "new@example.com", res.Principal.Email)
		assert.Equal(t, 1, fetcher.calls)

		// Stored credential: user replaced, token untouched.
		stored, err := store.Get()
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "token-123", stored.AccessToken)
		assert.Equal(t, *fresh, stored.User)
		assert.Equal(t, "2026-09-01T00:00:00Z", stored.ExpiresAt)
	})

	t.Run("rejected session erases the credential and redirects", func(t *testing.T) {
		store := credential.NewMemoryStore()
		require.NoError(t, store.Save(&credential.Credential{
			AccessToken: "stale-token",
			User:        api.User{ID: 1},
		}))

		fetcher := &fakeProfileFetcher{err: &api.StatusError{StatusCode: 401, Message: "Unauthorized"}}
		guard := NewGuard(store, fetcher)

		res, err := guard.Resolve(context.Background())
		require.NoError(t, err)

		assert.Equal(t, StateRedirecting, res.State)
		assert.Equal(t, SessionExpiredNotice, res.Notice)

		stored, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, stored, "credential must be erased")
	})

	t.Run("non-401 failures also erase the credential", func(t *testing.T) {
		store := credential.NewMemoryStore()
		require.NoError(t, store.Save(&credential.Credential{
			AccessToken: "token",
			User:        api.User{ID: 1},
		}))

		fetcher := &fakeProfileFetcher{err: errors.New("connection refused")}
		guard := NewGuard(store, fetcher)

		res, err := guard.Resolve(context.Background())
		require.NoError(t, err)

		assert.Equal(t, StateRedirecting, res.State)
		stored, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestSignOut(t *testing.T) {
	t.Run("erases the credential", func(t *testing.T) {
		store := credential.NewMemoryStore()
		require.NoError(t, store.Save(&credential.Credential{
			AccessToken: "token",
			User:        api.User{ID: 1},
		}))

		guard := NewGuard(store, &fakeProfileFetcher{})
		require.NoError(t, guard.SignOut())

		stored, err := store.Get()
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("is a no-op when already signed out", func(t *testing.T) {
		guard := NewGuard(credential.NewMemoryStore(), &fakeProfileFetcher{})
		assert.NoError(t, guard.SignOut())
	})
}
