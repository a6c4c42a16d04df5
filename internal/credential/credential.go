// Package credential is the single source of truth for the locally cached
// proof of authentication: an access token plus the last confirmed user
// profile. Every component reads and writes the credential through a Store;
// nothing else touches the underlying storage medium, so the medium can be
// swapped (file for production, memory for tests) without touching callers.
package credential

import (
	"github.com/tillworks/till/internal/api"
)

// Credential is the locally cached record of a successful login. The user
// snapshot is refreshed on every session resolution; the token is never
// locally mutated.
type Credential struct {
	AccessToken string   `json:"access_token"`
	User        api.User `json:"user"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
}

// Store holds at most one credential. Absence and unreadable data are the
// same state: signed out.
type Store interface {
	// Get returns the stored credential, or (nil, nil) when signed out.
	// A corrupt or unparseable record is treated as signed out, not as an
	// error.
	Get() (*Credential, error)

	// Save replaces the stored credential.
	Save(cred *Credential) error

	// Clear erases the stored credential. Clearing an empty store is a
	// no-op.
	Clear() error

	// Token returns the stored access token, or ok=false when signed out.
	// Satisfies the API client's auth-injection interface.
	Token() (token string, ok bool)
}
