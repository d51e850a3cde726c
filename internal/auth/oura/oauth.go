package oura

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
)

const (
	AuthURL  = "https://cloud.ouraring.com/oauth/authorize"
	TokenURL = "https://api.ouraring.com/oauth/token"

	// DefaultCallbackPort must match the redirect URI registered with Oura.
	DefaultCallbackPort = 8080
	CallbackPath        = "/callback"
)

// Scopes requested on every authorization.
var Scopes = []string{
	"email",
	"personal",
	"daily",
	"heartrate",
	"workout",
	"tag",
	"session",
	"spo2",
}

// Endpoint is the Oura authorization server. Client credentials travel in the
// request body.
var Endpoint = oauth2.Endpoint{
	AuthURL:   AuthURL,
	TokenURL:  TokenURL,
	AuthStyle: oauth2.AuthStyleInParams,
}

// NewConfig returns the OAuth2 config for the given client. The redirect URL
// is set per authorization.
func NewConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       Scopes,
		Endpoint:     Endpoint,
	}
}

// RedirectURL is the loopback callback address for port.
func RedirectURL(port int) string {
	return fmt.Sprintf("http://localhost:%d%s", port, CallbackPath)
}

// NewState returns an unguessable value binding a callback to its request.
func NewState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
