// Package upstream reads the Oura API v2 user collections.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pysugar/oura-scraper/internal/util"
	"github.com/pysugar/oura-scraper/internal/version"
	"github.com/rs/zerolog/log"
)

const (
	BaseURL = "https://api.ouraring.com/v2/usercollection"

	// DateLayout is the vendor's calendar date format.
	DateLayout = "2006-01-02"

	requestTimeout = 60 * time.Second
)

// TokenProvider hands out a currently valid access token.
type TokenProvider interface {
	ValidToken(ctx context.Context) (string, error)
}

// DateWindow is an inclusive range of calendar days.
type DateWindow struct {
	Start string `json:"start_date" yaml:"start_date"`
	End   string `json:"end_date" yaml:"end_date"`
}

// NewDateWindow ends on today's date and starts days before it.
func NewDateWindow(today time.Time, days int) DateWindow {
	return DateWindow{
		Start: today.AddDate(0, 0, -days).Format(DateLayout),
		End:   today.Format(DateLayout),
	}
}

// HTTPError is a non-2xx answer from the API. Body holds the full response;
// Error shortens it.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.StatusCode, util.TruncateBody(e.Body))
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusUnauthorized
}

// Client is an Oura API client. Every request asks the TokenProvider for a
// token, so expiry is handled transparently.
type Client struct {
	http   *resty.Client
	tokens TokenProvider
}

type options struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*options)

// WithBaseURL points the client at another API root.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithHTTPClient swaps the transport used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func NewClient(tokens TokenProvider, opts ...Option) *Client {
	o := options{baseURL: BaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	rc := resty.New()
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	}
	rc.SetBaseURL(o.baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "oura-scraper/"+version.Version)

	return &Client{http: rc, tokens: tokens}
}

type page[T any] struct {
	Data      []T     `json:"data"`
	NextToken *string `json:"next_token"`
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	token, err := c.tokens.ValidToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(params).
		SetResult(out).
		ForceContentType("application/json").
		Get("/" + endpoint)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	if resp.IsError() {
		return &HTTPError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// getCollection fetches every page of a collection. A nil window omits the
// date parameters.
func getCollection[T any](ctx context.Context, c *Client, endpoint string, w *DateWindow) ([]T, error) {
	params := map[string]string{}
	if w != nil {
		params["start_date"] = w.Start
		params["end_date"] = w.End
	}

	var all []T
	for {
		var p page[T]
		if err := c.get(ctx, endpoint, params, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Data...)
		if p.NextToken == nil || *p.NextToken == "" {
			break
		}
		params["next_token"] = *p.NextToken
	}

	log.Ctx(ctx).Debug().Str("endpoint", endpoint).Int("records", len(all)).Msg("fetched collection")
	return all, nil
}

func getDocument[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	var doc T
	if err := c.get(ctx, endpoint, nil, &doc); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("endpoint", endpoint).Msg("fetched document")
	return &doc, nil
}
