package token

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// LayeredStore answers Load from the first source holding a pair and sends
// writes to a single durable backend.
type LayeredStore struct {
	sources []Source
	backend Store
}

var _ Store = (*LayeredStore)(nil)

// NewLayeredStore consults overrides in order, then backend.
func NewLayeredStore(backend Store, overrides ...Source) *LayeredStore {
	sources := make([]Source, 0, len(overrides)+1)
	sources = append(sources, overrides...)
	return &LayeredStore{
		sources: append(sources, backend),
		backend: backend,
	}
}

// Load walks the sources in order. A source that fails is logged and skipped;
// ErrNoTokens is returned only when none yields a pair.
func (s *LayeredStore) Load(ctx context.Context) (*Pair, error) {
	for _, src := range s.sources {
		p, err := src.Load(ctx)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNoTokens) {
			log.Warn().Err(err).Msg("token source unavailable, trying next")
		}
	}
	return nil, ErrNoTokens
}

func (s *LayeredStore) Save(ctx context.Context, p *Pair) error {
	return s.backend.Save(ctx, p)
}

func (s *LayeredStore) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx)
}
