package oura

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CallbackTimeout is how long an interactive authorization waits by default.
const CallbackTimeout = 5 * time.Minute

// ErrCallbackTimeout is returned by Wait when no callback arrived in time.
var ErrCallbackTimeout = errors.New("authorization timed out")

// CallbackResult is what the browser redirect carried. Denied is set whenever
// an error parameter was present, even an empty one. All fields are zero when
// the request had neither a code nor an error.
type CallbackResult struct {
	Code             string
	State            string
	Denied           bool
	Error            string
	ErrorDescription string
}

// CallbackServer is a loopback HTTP server that accepts exactly one OAuth
// redirect and then shuts itself down.
type CallbackServer struct {
	port     int
	srv      *http.Server
	results  chan CallbackResult
	handled  atomic.Bool
	stopOnce sync.Once
}

// StartCallbackServer listens on port (0 picks a free one) and serves the
// callback route in the background.
func StartCallbackServer(port int) (*CallbackServer, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}

	s := &CallbackServer{
		port:    listener.Addr().(*net.TCPAddr).Port,
		results: make(chan CallbackResult, 1),
	}

	r := chi.NewRouter()
	r.Get(CallbackPath, s.handleCallback)
	s.srv = &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("callback server error")
		}
	}()
	log.Info().Int("port", s.port).Msg("callback server listening")
	return s, nil
}

// RedirectURL is the address the authorization server must redirect to.
func (s *CallbackServer) RedirectURL() string {
	return RedirectURL(s.port)
}

// Wait blocks until the callback is handled, ctx ends or timeout elapses.
func (s *CallbackServer) Wait(ctx context.Context, timeout time.Duration) (CallbackResult, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-s.results:
		return res, nil
	case <-timer.C:
		return CallbackResult{}, ErrCallbackTimeout
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	}
}

// Close stops the server. It is safe to call more than once.
func (s *CallbackServer) Close() {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("callback server shutdown")
		}
		log.Debug().Msg("callback server stopped")
	})
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if !s.handled.CompareAndSwap(false, true) {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	defer func() { go s.Close() }()

	q := r.URL.Query()
	var res CallbackResult
	switch {
	case q.Has("error"):
		res = CallbackResult{
			Denied:           true,
			Error:            q.Get("error"),
			ErrorDescription: q.Get("error_description"),
		}
		log.Warn().Str("error", res.Error).Msg("authorization denied")
		writePage(w, http.StatusOK, "Authorization Failed",
			fmt.Sprintf("Error: %s", html.EscapeString(res.Error)))
	case q.Get("code") != "":
		res = CallbackResult{Code: q.Get("code"), State: q.Get("state")}
		writePage(w, http.StatusOK, "Authorization Successful",
			"You can close this window and return to the terminal.")
	default:
		http.Error(w, "Invalid callback", http.StatusBadRequest)
	}

	s.results <- res
}

func writePage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>%s</title>
	<style>
		body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; text-align: center; }
	</style>
</head>
<body>
	<h1>%s</h1>
	<p>%s</p>
</body>
</html>`, title, title, body)
}
