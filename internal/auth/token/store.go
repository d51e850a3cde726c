package token

import "context"

// Source yields a token pair, or ErrNoTokens when it holds none.
type Source interface {
	Load(ctx context.Context) (*Pair, error)
}

// Store is a durable token backend.
type Store interface {
	Source
	Save(ctx context.Context, p *Pair) error
	Clear(ctx context.Context) error
}
