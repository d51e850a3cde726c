package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pysugar/oura-scraper/internal/auth/oura"
	"golang.org/x/oauth2"
)

var (
	// ErrNoTokens means no token pair exists in the consulted source.
	ErrNoTokens = errors.New("no tokens available")

	ErrStateMismatch       = errors.New("state mismatch - possible CSRF attack")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrCallbackTimeout     = oura.ErrCallbackTimeout
	ErrNoCode              = errors.New("callback carried no authorization code")
)

// AuthError reports a failed authorization, refresh or token lookup.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// StorageError reports an unreachable backend or a malformed durable record.
type StorageError struct {
	Op      string
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s token store %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NeedsReauthorization reports whether err can only be cured by running the
// interactive authorization again.
func NeedsReauthorization(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoTokens) {
		return true
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		switch re.ErrorCode {
		case "invalid_grant", "invalid_client", "unauthorized_client":
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"invalid_grant", "expired or revoked", "revoked"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
