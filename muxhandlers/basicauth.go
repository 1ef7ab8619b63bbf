package muxhandlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/vitalvas/waypoint/mux"
)

// ErrNoAuthSource is returned when BasicAuthConfig has neither ValidateFunc
// nor Credentials configured.
var ErrNoAuthSource = errors.New("basic auth: at least one of ValidateFunc or Credentials must be set")

// BasicAuthConfig configures the Basic Auth middleware behaviour.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc7617
type BasicAuthConfig struct {
	// Realm is the authentication realm sent in the WWW-Authenticate header.
	// Defaults to "Restricted" when empty.
	Realm string

	// ValidateFunc is called to validate credentials dynamically.
	// Takes priority over Credentials when both are set.
	ValidateFunc func(username, password string) bool

	// Credentials is a static map of username -> password pairs.
	// Compared using SHA-256 hashed constant-time comparison.
	Credentials map[string]string
}

// BasicAuth returns a before middleware that implements HTTP Basic
// Authentication per RFC 7617. Missing or invalid credentials stop the
// dispatch with a 401 *mux.HTTPError after the WWW-Authenticate header is
// set.
//
// It returns ErrNoAuthSource if both ValidateFunc and Credentials are nil/empty.
func BasicAuth(cfg BasicAuthConfig) (mux.HandlerFunc, error) {
	if cfg.ValidateFunc == nil && len(cfg.Credentials) == 0 {
		return nil, ErrNoAuthSource
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "Restricted"
	}

	wwwAuthenticate := fmt.Sprintf("Basic realm=%q", realm)

	validate := cfg.ValidateFunc
	credentials := cfg.Credentials

	return func(c *mux.Context) (any, error) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			return nil, unauthorized(c.Response, wwwAuthenticate)
		}

		if validate != nil {
			if !validate(username, password) {
				return nil, unauthorized(c.Response, wwwAuthenticate)
			}
			return nil, nil
		}

		expectedPassword, exists := credentials[username]
		// The comparison runs for unknown users too, so response time does
		// not reveal which usernames exist.
		passwordMatch := constantTimeEqual(password, expectedPassword)
		if !exists || !passwordMatch {
			return nil, unauthorized(c.Response, wwwAuthenticate)
		}

		return nil, nil
	}, nil
}

// constantTimeEqual compares two strings in constant time by first hashing
// them with SHA-256, which also hides their lengths.
func constantTimeEqual(a, b string) bool {
	aHash := sha256.Sum256([]byte(a))
	bHash := sha256.Sum256([]byte(b))

	return subtle.ConstantTimeCompare(aHash[:], bHash[:]) == 1
}

// unauthorized sets the WWW-Authenticate header and returns the error that
// makes the router answer 401 with an empty body.
func unauthorized(w http.ResponseWriter, wwwAuthenticate string) error {
	w.Header().Set("WWW-Authenticate", wwwAuthenticate)
	return &mux.HTTPError{Code: http.StatusUnauthorized}
}
