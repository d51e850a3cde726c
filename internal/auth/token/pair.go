package token

import (
	"time"

	"golang.org/x/oauth2"
)

const (
	// ExpiryMargin is how long before its literal expiry a token stops being trusted.
	ExpiryMargin = 5 * time.Minute

	// DefaultLifetime applies when the token endpoint omits expires_in.
	DefaultLifetime = 24 * time.Hour

	DefaultTokenType = "bearer"
)

// Pair is the OAuth token pair persisted between runs. It is only ever
// replaced as a whole.
type Pair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
}

// ExpiredAt reports whether the pair must be refreshed at instant t.
func (p *Pair) ExpiredAt(t time.Time) bool {
	return !t.Before(p.ExpiresAt.Add(-ExpiryMargin))
}

// Expired reports whether the pair must be refreshed now.
func (p *Pair) Expired() bool {
	return p.ExpiredAt(time.Now())
}

// FromOAuth2 converts a token endpoint response into a Pair.
func FromOAuth2(tok *oauth2.Token, now time.Time) *Pair {
	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = now.Add(DefaultLifetime)
	}
	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = DefaultTokenType
	}
	return &Pair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    storedTime(expiresAt),
		TokenType:    tokenType,
	}
}

// storedTime drops what Postgres timestamptz cannot hold, so a saved pair
// loads back equal.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Mask hides all but the tail of a token for display and logs.
func Mask(t string) string {
	if len(t) < 20 {
		return "***"
	}
	return "..." + t[len(t)-8:]
}
