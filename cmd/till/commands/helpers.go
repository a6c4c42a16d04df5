package commands

import (
	"context"
	"fmt"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/config"
	"github.com/tillworks/till/internal/credential"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/session"
)

// loadConfig resolves the configuration from --config or the default
// per-user location.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return config.Load(path)
}

// newClient wires the credential store and the API client from the
// configuration. Every command goes through here so the credential is only
// ever touched via the store.
func newClient() (*api.Client, credential.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := credential.NewFileStore()
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := api.NewClient(cfg.APIBaseURL, store, api.WithTimeout(cfg.Timeout()))
	if err != nil {
		return nil, nil, nil, err
	}
	return client, store, cfg, nil
}

// requireSession runs the session guard once and returns the resolved
// principal. Guard resolution is strictly sequenced before any protected
// command body: callers must not issue other requests until it returns.
func requireSession(ctx context.Context, client *api.Client, store credential.Store) (*api.User, error) {
	guard := session.NewGuard(store, client)

	resolution, err := guard.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("session check failed: %w", err)
	}

	switch resolution.State {
	case session.StateAuthenticated:
		return resolution.Principal, nil
	case session.StateRedirecting:
		if resolution.Notice != "" {
			printer.Banner(resolution.Notice)
		}
		return nil, printer.Error(
			"not signed in",
			"This command requires an authenticated session.",
			[]string{"Sign in first:\n  till login"},
		)
	default:
		return nil, fmt.Errorf("session resolution ended in unexpected state %q", resolution.State)
	}
}

// requireRole refuses commands whose screen is not offered to the
// principal's role. This mirrors the navigation filter and is a courtesy
// only - the POS service enforces authorization independently.
func requireRole(principal *api.User, role api.Role) error {
	if principal.Role == role {
		return nil
	}
	return printer.Error(
		fmt.Sprintf("%s role required", role),
		fmt.Sprintf("Signed in as %s with role %q.", principal.Email, principal.Role),
		nil,
	)
}
