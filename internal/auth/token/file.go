package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultTokenPath is where tokens are kept when no path is configured.
const DefaultTokenPath = "admin/tokens/oura_tokens.json"

// FileStore keeps the token pair as a single JSON document readable only by its owner.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore at path, or DefaultTokenPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultTokenPath
	}
	return &FileStore{path: path}
}

// Save replaces the token file atomically.
func (s *FileStore) Save(_ context.Context, p *Pair) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*.json")
	if err != nil {
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &StorageError{Op: "save", Backend: "file", Err: err}
	}

	log.Info().Str("path", s.path).Msg("tokens saved to file")
	return nil
}

// Load reads the token file. A missing file yields ErrNoTokens, unreadable or
// incomplete content yields a StorageError.
func (s *FileStore) Load(_ context.Context) (*Pair, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoTokens
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Backend: "file", Err: err}
	}

	var p Pair
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &StorageError{Op: "load", Backend: "file", Err: err}
	}
	if p.AccessToken == "" || p.RefreshToken == "" || p.ExpiresAt.IsZero() {
		return nil, &StorageError{Op: "load", Backend: "file", Err: fmt.Errorf("incomplete token record in %s", s.path)}
	}
	if p.TokenType == "" {
		p.TokenType = DefaultTokenType
	}
	return &p, nil
}

// Clear deletes the token file if present.
func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Op: "clear", Backend: "file", Err: err}
	}
	log.Info().Str("path", s.path).Msg("tokens cleared")
	return nil
}
