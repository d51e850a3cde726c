package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/pysugar/oura-scraper/internal/db/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore keeps the token pair in the single-row oauth_tokens table.
type DBStore struct {
	db *gorm.DB
}

var _ Store = (*DBStore)(nil)

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Save replaces the stored row in one statement.
func (s *DBStore) Save(ctx context.Context, p *Pair) error {
	row := models.OAuthToken{
		ID:           models.OAuthTokenRowID,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    storedTime(p.ExpiresAt),
		TokenType:    p.TokenType,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return &StorageError{Op: "save", Backend: "database", Err: err}
	}
	log.Info().Str("access_token", Mask(p.AccessToken)).Msg("tokens saved to database")
	return nil
}

func (s *DBStore) Load(ctx context.Context) (*Pair, error) {
	var row models.OAuthToken
	err := s.db.WithContext(ctx).First(&row, "id = ?", models.OAuthTokenRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTokens
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Backend: "database", Err: err}
	}
	if row.AccessToken == "" || row.RefreshToken == "" || row.ExpiresAt.IsZero() {
		return nil, &StorageError{Op: "load", Backend: "database", Err: fmt.Errorf("incomplete token row")}
	}

	tokenType := row.TokenType
	if tokenType == "" {
		tokenType = DefaultTokenType
	}
	return &Pair{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
		ExpiresAt:    row.ExpiresAt.UTC(),
		TokenType:    tokenType,
	}, nil
}

func (s *DBStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&models.OAuthToken{}, models.OAuthTokenRowID).Error
	if err != nil {
		return &StorageError{Op: "clear", Backend: "database", Err: err}
	}
	log.Info().Msg("tokens cleared from database")
	return nil
}
