package token

import (
	"context"
	"time"
)

// envLifetime is assumed for operator-supplied tokens, whose real expiry is unknown.
const envLifetime = 365 * 24 * time.Hour

// EnvSource serves a token pair provisioned through configuration, usually
// OURA_ACCESS_TOKEN and OURA_REFRESH_TOKEN. It is read-only; refreshed tokens
// go to the durable backend.
type EnvSource struct {
	access  string
	refresh string
	now     func() time.Time
}

var _ Source = (*EnvSource)(nil)

func NewEnvSource(access, refresh string) *EnvSource {
	return &EnvSource{access: access, refresh: refresh, now: time.Now}
}

// Load returns ErrNoTokens unless both tokens are set.
func (s *EnvSource) Load(context.Context) (*Pair, error) {
	if s.access == "" || s.refresh == "" {
		return nil, ErrNoTokens
	}
	return &Pair{
		AccessToken:  s.access,
		RefreshToken: s.refresh,
		ExpiresAt:    storedTime(s.now().Add(envLifetime)),
		TokenType:    DefaultTokenType,
	}, nil
}
