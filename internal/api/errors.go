package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is reported when the POS service rejects the stored
// access token. By the time a caller sees this error the credential has
// already been erased, so the only recovery is signing in again.
var ErrSessionExpired = errors.New("session expired")

// StatusError is returned for any non-2xx response from the POS service.
// Message carries the response body text, or the HTTP status text when the
// body was empty, so server-side validation detail reaches the user verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pos api: %s (status %d)", e.Message, e.StatusCode)
}

// Is lets errors.Is(err, ErrSessionExpired) match any 401 response without
// losing the status code and body for callers that need them.
func (e *StatusError) Is(target error) bool {
	return target == ErrSessionExpired && e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is a 401 response. Used by the login
// command to show "invalid credentials" inline instead of a session banner.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized
}
