// Package scraper runs every Oura endpoint into the database and reports the
// outcome of each one.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pysugar/oura-scraper/internal/logging"
	"github.com/pysugar/oura-scraper/internal/upstream"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DefaultDays is the lookback window when none is configured.
const DefaultDays = 7

// Endpoint fetches one collection and stores it through tx, returning the
// number of records written.
type Endpoint struct {
	Name string
	Run  func(ctx context.Context, tx *gorm.DB, w upstream.DateWindow) (int, error)
}

// Scraper runs a fixed, ordered list of endpoints.
type Scraper struct {
	db        *gorm.DB
	endpoints []Endpoint
	now       func() time.Time
}

type Option func(*Scraper)

// WithEndpoints replaces the endpoint list.
func WithEndpoints(eps ...Endpoint) Option {
	return func(s *Scraper) { s.endpoints = eps }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Scraper) { s.now = fn }
}

// New scrapes every endpoint of client into db unless WithEndpoints says otherwise.
func New(db *gorm.DB, client *upstream.Client, opts ...Option) *Scraper {
	s := &Scraper{db: db, now: time.Now}
	if client != nil {
		s.endpoints = DefaultEndpoints(client)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoints returns the names this scraper runs, in order.
func (s *Scraper) Endpoints() []string {
	names := make([]string, len(s.endpoints))
	for i, ep := range s.endpoints {
		names[i] = ep.Name
	}
	return names
}

// Run scrapes the last days days. All endpoints share one transaction; each
// runs inside its own savepoint so a failing endpoint is rolled back and
// recorded without affecting the others. The error is non-nil only when the
// transaction itself cannot be opened or committed; endpoint failures are
// reported in the Report.
func (s *Scraper) Run(ctx context.Context, days int) (*Report, error) {
	if days <= 0 {
		days = DefaultDays
	}
	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)
	logger := log.Ctx(ctx)

	started := s.now()
	w := upstream.NewDateWindow(started, days)
	report := newReport(runID, w.Start, w.End, started)

	logger.Info().
		Int("days", days).
		Str("start_date", w.Start).
		Str("end_date", w.End).
		Int("endpoints", len(s.endpoints)).
		Msg("starting scrape")

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ep := range s.endpoints {
			report.record(ep.Name, s.runEndpoint(ctx, tx, ep, w))
		}
		return nil
	})
	report.Duration = s.now().Sub(started)
	if err != nil {
		return report, fmt.Errorf("scrape transaction: %w", err)
	}

	logger.Info().
		Int("records", report.TotalRecords()).
		Strs("failed", report.Failed()).
		Dur("duration", report.Duration).
		Msg("scrape completed")
	return report, nil
}

func (s *Scraper) runEndpoint(ctx context.Context, tx *gorm.DB, ep Endpoint, w upstream.DateWindow) Result {
	logger := log.Ctx(ctx).With().Str("endpoint", ep.Name).Logger()
	logger.Info().Msg("scraping")

	var n int
	err := tx.Transaction(func(sp *gorm.DB) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		n, err = ep.Run(ctx, sp, w)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Msg("endpoint failed")
		res := Result{Success: false, Error: err.Error()}
		var he *upstream.HTTPError
		if errors.As(err, &he) {
			res.StatusCode = he.StatusCode
		}
		return res
	}

	logger.Info().Int("records", n).Msg("stored")
	return Result{Success: true, Records: n}
}
