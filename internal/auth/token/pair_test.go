package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestPairExpiryMarginBoundary(t *testing.T) {
	expires := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p := &Pair{AccessToken: "a", RefreshToken: "r", ExpiresAt: expires}

	tests := []struct {
		name    string
		at      time.Time
		expired bool
	}{
		{name: "well before", at: expires.Add(-time.Hour), expired: false},
		{name: "just inside margin", at: expires.Add(-ExpiryMargin - time.Second), expired: false},
		{name: "exactly at margin", at: expires.Add(-ExpiryMargin), expired: true},
		{name: "within margin", at: expires.Add(-time.Minute), expired: true},
		{name: "past expiry", at: expires.Add(time.Hour), expired: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, p.ExpiredAt(tt.at))
		})
	}
}

func TestFromOAuth2Defaults(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p := FromOAuth2(&oauth2.Token{AccessToken: "a", RefreshToken: "r"}, now)
	assert.Equal(t, now.Add(DefaultLifetime), p.ExpiresAt)
	assert.Equal(t, DefaultTokenType, p.TokenType)

	expiry := now.Add(time.Hour)
	p = FromOAuth2(&oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: expiry, TokenType: "Bearer"}, now)
	assert.Equal(t, expiry, p.ExpiresAt)
	assert.Equal(t, "Bearer", p.TokenType)

	p = FromOAuth2(&oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: expiry.Add(1500 * time.Nanosecond)}, now)
	assert.Equal(t, expiry.Add(time.Microsecond), p.ExpiresAt, "expiry is kept to microseconds")
}

func TestMaskTokenNeverRevealsShortTokens(t *testing.T) {
	assert.Equal(t, "***", Mask("short"))
	assert.Equal(t, "...12345678", Mask(strings.Repeat("x", 20)+"12345678"))
}
