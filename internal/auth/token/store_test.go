package token

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pysugar/oura-scraper/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testPair() *Pair {
	return &Pair{
		AccessToken:  "access-0123456789abcdef",
		RefreshToken: "refresh-0123456789abcdef",
		ExpiresAt:    time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
		TokenType:    "bearer",
	}
}

func newTestDBStore(t *testing.T) *DBStore {
	t.Helper()
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "tokens.db"), false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	t.Cleanup(func() { _ = db.Close(conn) })
	return NewDBStore(conn)
}

func TestStoresRoundTrip(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store {
			return NewFileStore(filepath.Join(t.TempDir(), "nested", "tokens.json"))
		},
		"database": func(t *testing.T) Store { return newTestDBStore(t) },
	}

	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			_, err := s.Load(ctx)
			assert.ErrorIs(t, err, ErrNoTokens)

			want := testPair()
			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want.AccessToken, got.AccessToken)
			assert.Equal(t, want.RefreshToken, got.RefreshToken)
			assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
			assert.Equal(t, want.TokenType, got.TokenType)

			// A second save replaces the pair as a whole.
			next := testPair()
			next.AccessToken = "access-rotated-0123456789"
			next.RefreshToken = "refresh-rotated-0123456789"
			require.NoError(t, s.Save(ctx, next))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, next.RefreshToken, got.RefreshToken)

			require.NoError(t, s.Clear(ctx))
			_, err = s.Load(ctx)
			assert.ErrorIs(t, err, ErrNoTokens)
			require.NoError(t, s.Clear(ctx))
		})
	}
}

func TestStoredExpiryRoundTripsExactly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	issued := now.Add(time.Hour + 987654321*time.Nanosecond)
	want := FromOAuth2(&oauth2.Token{AccessToken: "access-0123456789abcdef", RefreshToken: "refresh-0123456789abcdef", Expiry: issued}, now)
	assert.Zero(t, want.ExpiresAt.Nanosecond()%int(time.Microsecond))

	for name, s := range map[string]Store{
		"file":     NewFileStore(filepath.Join(t.TempDir(), "tokens.json")),
		"database": newTestDBStore(t),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt), "want %s, got %s", want.ExpiresAt, got.ExpiresAt)
		})
	}
}

func TestFileStoreIsOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(context.Background(), testPair()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorruptFileIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "file", se.Backend)
}

func TestEnvSource(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.UTC)
	clock := func() time.Time { return now }

	_, err := (&EnvSource{now: clock}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoTokens)

	_, err = (&EnvSource{access: "env-access", now: clock}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoTokens, "both tokens are required")

	src := &EnvSource{access: "env-access", refresh: "env-refresh", now: clock}
	p, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-access", p.AccessToken)
	assert.Equal(t, "env-refresh", p.RefreshToken)
	assert.Equal(t, now.Add(365*24*time.Hour).Truncate(time.Microsecond), p.ExpiresAt)
	assert.False(t, p.ExpiredAt(now))
}

func TestLayeredStorePrefersEnvironment(t *testing.T) {
	ctx := context.Background()
	backend := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, backend.Save(ctx, testPair()))

	s := NewLayeredStore(backend, NewEnvSource("env-access", "env-refresh"))
	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "env-access", p.AccessToken)

	// Writes still go to the backend.
	next := testPair()
	next.RefreshToken = "refresh-rotated-0123456789"
	require.NoError(t, s.Save(ctx, next))
	stored, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next.RefreshToken, stored.RefreshToken)
}

func TestLayeredStoreFallsBackToBackend(t *testing.T) {
	ctx := context.Background()
	backend := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	s := NewLayeredStore(backend, NewEnvSource("", ""))

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoTokens)

	require.NoError(t, s.Save(ctx, testPair()))
	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testPair().AccessToken, p.AccessToken)

	require.NoError(t, s.Clear(ctx))
	_, err = backend.Load(ctx)
	assert.ErrorIs(t, err, ErrNoTokens)
}

type failingSource struct{}

func (failingSource) Load(context.Context) (*Pair, error) {
	return nil, &StorageError{Op: "load", Backend: "test", Err: errors.New("unreachable")}
}

func TestLayeredStoreSkipsFailingSource(t *testing.T) {
	ctx := context.Background()
	backend := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, backend.Save(ctx, testPair()))

	s := &LayeredStore{sources: []Source{failingSource{}, backend}, backend: backend}
	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testPair().RefreshToken, p.RefreshToken)

	s = &LayeredStore{sources: []Source{failingSource{}}, backend: backend}
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoTokens)
}
