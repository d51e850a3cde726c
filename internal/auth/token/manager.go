package token

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pkg/browser"
	"github.com/pysugar/oura-scraper/internal/auth/oura"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Manager owns the token lifecycle: authorization, code exchange, refresh
// with rotation and handing out a currently valid access token.
type Manager struct {
	config  *oauth2.Config
	store   Store
	client  *http.Client
	openURL func(string) error
	prompt  io.Writer
	now     func() time.Time

	mu      sync.Mutex
	current *Pair
}

type Option func(*Manager)

// WithHTTPClient sets the client used to reach the token endpoint.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithBrowserOpener replaces the function that opens the consent page.
func WithBrowserOpener(fn func(string) error) Option {
	return func(m *Manager) { m.openURL = fn }
}

// WithPrompt sets where the authorization URL is printed.
func WithPrompt(w io.Writer) Option {
	return func(m *Manager) { m.prompt = w }
}

func WithClock(fn func() time.Time) Option {
	return func(m *Manager) { m.now = fn }
}

func NewManager(config *oauth2.Config, store Store, opts ...Option) *Manager {
	m := &Manager{
		config:  config,
		store:   store,
		openURL: browser.OpenURL,
		prompt:  os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AuthorizationURL builds the consent URL for redirectURL and a fresh state
// the callback must echo. Nil scopes request the configured set.
func (m *Manager) AuthorizationURL(redirectURL string, scopes []string) (string, string, error) {
	state, err := oura.NewState()
	if err != nil {
		return "", "", err
	}
	cfg := m.configFor(redirectURL)
	if scopes != nil {
		cfg.Scopes = scopes
	}
	return cfg.AuthCodeURL(state), state, nil
}

// ExchangeCode trades an authorization code for a token pair and persists it.
// The redirect URL must equal the one used to build the authorization URL.
func (m *Manager) ExchangeCode(ctx context.Context, code, redirectURL string) (*Pair, error) {
	tok, err := m.configFor(redirectURL).Exchange(m.oauthContext(ctx), code)
	if err != nil {
		return nil, &AuthError{Op: "exchange", Err: err}
	}
	p := FromOAuth2(tok, m.now())
	if p.RefreshToken == "" {
		return nil, &AuthError{Op: "exchange", Err: errors.New("token response carried no refresh token")}
	}

	log.Info().
		Str("access_token", Mask(p.AccessToken)).
		Time("expires_at", p.ExpiresAt).
		Msg("authorization code exchanged")
	return p, m.remember(ctx, p)
}

// Refresh redeems refreshToken, or the stored one when empty, for a new pair.
// Refresh tokens are single-use: the returned pair replaces the stored one.
// If persisting fails the new pair is still cached and returned with the error.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (*Pair, error) {
	if refreshToken == "" {
		stored, err := m.store.Load(ctx)
		if err != nil {
			return nil, &AuthError{Op: "refresh", Err: err}
		}
		refreshToken = stored.RefreshToken
	}

	src := m.config.TokenSource(m.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		log.Error().Err(err).Msg("token refresh failed")
		return nil, &AuthError{Op: "refresh", Err: err}
	}
	p := FromOAuth2(tok, m.now())

	log.Info().
		Str("access_token", Mask(p.AccessToken)).
		Time("expires_at", p.ExpiresAt).
		Msg("access token refreshed")
	return p, m.remember(ctx, p)
}

// ValidToken returns an access token that is not within ExpiryMargin of
// expiring, refreshing it first when needed.
func (m *Manager) ValidToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	cached := m.current
	m.mu.Unlock()
	if cached != nil && !cached.ExpiredAt(m.now()) {
		return cached.AccessToken, nil
	}

	p, err := m.store.Load(ctx)
	if err != nil {
		return "", &AuthError{Op: "token", Err: err}
	}
	if p.ExpiredAt(m.now()) {
		log.Info().Time("expires_at", p.ExpiresAt).Msg("access token expired, refreshing")
		p, err = m.Refresh(ctx, p.RefreshToken)
		if p == nil {
			return "", err
		}
		if err != nil {
			log.Warn().Err(err).Msg("using refreshed token that could not be persisted")
		}
	} else {
		m.mu.Lock()
		m.current = p
		m.mu.Unlock()
	}
	return p.AccessToken, nil
}

// AuthorizeInteractive runs the full browser flow: it listens for the
// redirect on port, sends the user to the consent page and exchanges the
// returned code. Denied, code-less or forged callbacks never reach the
// token endpoint.
func (m *Manager) AuthorizeInteractive(ctx context.Context, port int, openBrowser bool, timeout time.Duration) (*Pair, error) {
	srv, err := oura.StartCallbackServer(port)
	if err != nil {
		return nil, &AuthError{Op: "authorize", Err: err}
	}
	defer srv.Close()

	authURL, state, err := m.AuthorizationURL(srv.RedirectURL(), nil)
	if err != nil {
		return nil, &AuthError{Op: "authorize", Err: err}
	}

	fmt.Fprintf(m.prompt, "\nOpen this URL to authorize access to your Oura data:\n\n%s\n\n", authURL)
	if openBrowser {
		if err := m.openURL(authURL); err != nil {
			log.Warn().Err(err).Msg("could not open browser, visit the URL manually")
		}
	}

	res, err := srv.Wait(ctx, timeout)
	if err != nil {
		return nil, &AuthError{Op: "authorize", Err: err}
	}
	switch {
	case res.Denied:
		return nil, &AuthError{Op: "authorize", Err: fmt.Errorf("%w: %s", ErrAuthorizationDenied, res.Error)}
	case res.Code == "":
		return nil, &AuthError{Op: "authorize", Err: ErrNoCode}
	case subtle.ConstantTimeCompare([]byte(res.State), []byte(state)) != 1:
		log.Error().Msg("callback state does not match the issued state")
		return nil, &AuthError{Op: "authorize", Err: ErrStateMismatch}
	}

	return m.ExchangeCode(ctx, res.Code, srv.RedirectURL())
}

// remember caches p and persists it.
func (m *Manager) remember(ctx context.Context, p *Pair) error {
	m.mu.Lock()
	m.current = p
	m.mu.Unlock()

	return m.store.Save(ctx, p)
}

// Forget drops the cached pair and clears the store.
func (m *Manager) Forget(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	return m.store.Clear(ctx)
}

func (m *Manager) configFor(redirectURL string) *oauth2.Config {
	cfg := *m.config
	cfg.RedirectURL = redirectURL
	return &cfg
}

func (m *Manager) oauthContext(ctx context.Context) context.Context {
	if m.client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, m.client)
}
