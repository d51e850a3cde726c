package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/pysugar/oura-scraper/internal/db"
	"github.com/pysugar/oura-scraper/internal/db/models"
	"github.com/pysugar/oura-scraper/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "oura.db"), false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

func intp(v int) *int { return &v }

var fixedNow = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

func TestRunIsolatesFailingEndpoint(t *testing.T) {
	conn := newTestDB(t)

	first := Endpoint{Name: "daily_sleep", Run: func(ctx context.Context, tx *gorm.DB, _ upstream.DateWindow) (int, error) {
		return db.Upsert(tx, "daily_sleep", []models.DailySleep{{ID: "s1", Day: "2024-01-07", Score: intp(80)}})
	}}
	// Writes before failing; the write must not survive.
	second := Endpoint{Name: "daily_stress", Run: func(ctx context.Context, tx *gorm.DB, _ upstream.DateWindow) (int, error) {
		if _, err := db.Upsert(tx, "daily_stress", []models.DailyStress{{ID: "x1", Day: "2024-01-07"}}); err != nil {
			return 0, err
		}
		return 0, errors.New("boom")
	}}
	third := Endpoint{Name: "workout", Run: func(ctx context.Context, tx *gorm.DB, _ upstream.DateWindow) (int, error) {
		return db.Upsert(tx, "workout", []models.Workout{{ID: "w1", Day: "2024-01-07"}, {ID: "w2", Day: "2024-01-08"}})
	}}

	s := New(conn, nil, WithEndpoints(first, second, third), WithClock(func() time.Time { return fixedNow }))
	report, err := s.Run(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"daily_sleep", "daily_stress", "workout"}, report.Names())
	assert.Equal(t, Result{Success: true, Records: 1}, report.Endpoints["daily_sleep"])
	assert.Equal(t, Result{Success: false, Error: "boom"}, report.Endpoints["daily_stress"])
	assert.Equal(t, Result{Success: true, Records: 2}, report.Endpoints["workout"])
	assert.Equal(t, []string{"daily_stress"}, report.Failed())
	assert.False(t, report.OK())
	assert.Equal(t, "2024-01-01", report.StartDate)
	assert.Equal(t, "2024-01-08", report.EndDate)
	assert.NotEmpty(t, report.RunID)

	var sleeps, stresses, workouts int64
	require.NoError(t, conn.Model(&models.DailySleep{}).Count(&sleeps).Error)
	require.NoError(t, conn.Model(&models.DailyStress{}).Count(&stresses).Error)
	require.NoError(t, conn.Model(&models.Workout{}).Count(&workouts).Error)
	assert.EqualValues(t, 1, sleeps)
	assert.EqualValues(t, 0, stresses)
	assert.EqualValues(t, 2, workouts)
}

func TestRunRecoversPanickingEndpoint(t *testing.T) {
	conn := newTestDB(t)
	ran := false
	s := New(conn, nil, WithEndpoints(
		Endpoint{Name: "bad", Run: func(context.Context, *gorm.DB, upstream.DateWindow) (int, error) {
			panic("unexpected payload")
		}},
		Endpoint{Name: "good", Run: func(context.Context, *gorm.DB, upstream.DateWindow) (int, error) {
			ran = true
			return 0, nil
		}},
	))

	report, err := s.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, report.Endpoints["bad"].Success)
	assert.Contains(t, report.Endpoints["bad"].Error, "unexpected payload")
	assert.True(t, report.Endpoints["good"].Success)
}

func TestRunPassesDateWindow(t *testing.T) {
	conn := newTestDB(t)
	var got upstream.DateWindow
	s := New(conn, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithEndpoints(Endpoint{Name: "probe", Run: func(_ context.Context, _ *gorm.DB, w upstream.DateWindow) (int, error) {
			got = w
			return 0, nil
		}}),
	)

	_, err := s.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, upstream.DateWindow{Start: "2024-01-05", End: "2024-01-08"}, got)
}

type staticTokens string

func (s staticTokens) ValidToken(context.Context) (string, error) { return string(s), nil }

func TestDefaultEndpointsAgainstFakeAPI(t *testing.T) {
	conn := newTestDB(t)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/personal_info":
			fmt.Fprint(w, `{"id":"u1","age":30}`)
		case "/daily_readiness":
			fmt.Fprint(w, `{"data":[{"id":"r1","day":"2024-01-07","score":88,"contributors":{"hrv_balance":71}}]}`)
		case "/heartrate":
			fmt.Fprint(w, `{"data":[{"timestamp":"2024-01-07T10:00:00+00:00","bpm":61,"source":"awake"}]}`)
		case "/workout":
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"detail":"upstream down"}`)
		default:
			fmt.Fprint(w, `{"data":[],"next_token":null}`)
		}
	}))
	t.Cleanup(api.Close)

	client := upstream.NewClient(staticTokens("tok"), upstream.WithBaseURL(api.URL))
	s := New(conn, client, WithClock(func() time.Time { return fixedNow }))
	assert.Len(t, s.Endpoints(), 17)

	report, err := s.Run(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, s.Endpoints(), report.Names())
	assert.Equal(t, []string{"workout"}, report.Failed())
	assert.Contains(t, report.Endpoints["workout"].Error, "HTTP 500")
	assert.Equal(t, http.StatusInternalServerError, report.Endpoints["workout"].StatusCode)
	assert.False(t, report.Unauthorized())
	assert.Equal(t, 1, report.Endpoints["personal_info"].Records)
	assert.Equal(t, 1, report.Endpoints["heartrate"].Records)
	assert.True(t, report.Endpoints["rest_mode_period"].Success)

	var readiness models.DailyReadiness
	require.NoError(t, conn.First(&readiness, "id = ?", "r1").Error)
	assert.Equal(t, 71, *readiness.HRVBalance)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	assert.Contains(t, buf.String(), "workout")
	assert.Contains(t, buf.String(), "FAILED")
}
