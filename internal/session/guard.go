// Package session gates access to protected screens. The Guard is an
// explicit state machine inspected by the command shell: it never prints,
// never navigates, and never renders, so its behavior is testable without
// a terminal harness.
package session

import (
	"context"
	"fmt"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/credential"
)

// State is the Guard's position in the session-resolution protocol.
type State string

const (
	// StateChecking means resolution has not completed; no protected
	// content may be shown.
	StateChecking State = "checking"

	// StateAuthenticated means a fresh principal has been resolved and
	// protected content may be shown.
	StateAuthenticated State = "authenticated"

	// StateRedirecting means there is no valid session; the only output
	// allowed is a redirect to sign-in.
	StateRedirecting State = "redirecting"
)

// SessionExpiredNotice is shown when a previously valid session is rejected
// by the server.
const SessionExpiredNotice = "Session expired. Please sign in again."

// Resolution is the outcome of one Guard resolution attempt.
type Resolution struct {
	State State

	// Principal is the freshly confirmed identity. Set only when State is
	// StateAuthenticated.
	Principal *api.User

	// Notice is a human-readable reason for a redirect, empty when the
	// user was simply never signed in.
	Notice string
}

// ProfileFetcher is the one remote call the Guard depends on.
type ProfileFetcher interface {
	Me(ctx context.Context) (*api.User, error)
}

// Guard resolves whether a valid session exists before a protected screen
// is shown. Exactly one resolution attempt is made per call to Resolve;
// the Guard does not poll or retry on failure.
type Guard struct {
	store  credential.Store
	client ProfileFetcher
}

// NewGuard creates a Guard over the given credential store and API client.
func NewGuard(store credential.Store, client ProfileFetcher) *Guard {
	return &Guard{store: store, client: client}
}

// Resolve runs the session-gating protocol once:
//
//  1. No stored credential (or no token) -> StateRedirecting, with zero
//     network calls.
//  2. Otherwise one GET /api/auth/me. Success overwrites the stored
//     credential with the fresh profile, keeping the token untouched,
//     and yields StateAuthenticated.
//  3. Any failure erases the credential and yields StateRedirecting with
//     the session-expired notice.
func (g *Guard) Resolve(ctx context.Context) (Resolution, error) {
	cred, err := g.store.Get()
	if err != nil {
		return Resolution{State: StateChecking}, fmt.Errorf("failed to read credential: %w", err)
	}
	if cred == nil || cred.AccessToken == "" {
		return Resolution{State: StateRedirecting}, nil
	}

	user, err := g.client.Me(ctx)
	if err != nil {
		// The API client already clears the store on a 401; clearing
		// again here also covers non-401 failures and is a no-op when
		// the credential is gone.
		if clearErr := g.store.Clear(); clearErr != nil {
			return Resolution{State: StateChecking}, fmt.Errorf("failed to clear credential: %w", clearErr)
		}
		return Resolution{State: StateRedirecting, Notice: SessionExpiredNotice}, nil
	}

	refreshed := &credential.Credential{
		AccessToken: cred.AccessToken,
		User:        *user,
		ExpiresAt:   cred.ExpiresAt,
	}
	if err := g.store.Save(refreshed); err != nil {
		return Resolution{State: StateChecking}, fmt.Errorf("failed to refresh stored credential: %w", err)
	}

	return Resolution{State: StateAuthenticated, Principal: user}, nil
}

// SignOut erases the stored credential. Available from any state.
func (g *Guard) SignOut() error {
	if err := g.store.Clear(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}
