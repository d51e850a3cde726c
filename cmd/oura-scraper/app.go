package main

import (
	"fmt"

	"github.com/pysugar/oura-scraper/internal/auth/oura"
	"github.com/pysugar/oura-scraper/internal/auth/token"
	"github.com/pysugar/oura-scraper/internal/config"
	"github.com/pysugar/oura-scraper/internal/db"
	"github.com/pysugar/oura-scraper/internal/logging"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// app is the wiring shared by every command.
type app struct {
	settings *config.Settings
	db       *gorm.DB
	store    *token.LayeredStore
	manager  *token.Manager
}

func loadSettings() (*config.Settings, error) {
	s, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(s.LogLevel, s.LogPretty)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// newApp opens the database when withDB is set or the token backend needs it.
func newApp(s *config.Settings, withDB bool) (*app, error) {
	a := &app{settings: s}

	if withDB || s.TokenBackend == config.BackendDatabase {
		conn, err := db.Open(s.DBDriver, s.DatabaseURL(), s.DBDebug)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn); err != nil {
			_ = db.Close(conn)
			return nil, err
		}
		a.db = conn
	}

	var backend token.Store
	switch s.TokenBackend {
	case config.BackendFile:
		backend = token.NewFileStore(s.TokenPath)
	case config.BackendDatabase:
		backend = token.NewDBStore(a.db)
	default:
		return nil, fmt.Errorf("unknown token backend %q", s.TokenBackend)
	}
	a.store = token.NewLayeredStore(backend, token.NewEnvSource(s.AccessToken, s.RefreshToken))

	if s.RequireClient() != nil {
		log.Warn().Msg("OURA_CLIENT_ID or OURA_CLIENT_SECRET not set, token refresh will fail")
	}
	a.manager = token.NewManager(oura.NewConfig(s.ClientID, s.ClientSecret), a.store)
	return a, nil
}

func (a *app) Close() {
	if a.db == nil {
		return
	}
	if err := db.Close(a.db); err != nil {
		log.Warn().Err(err).Msg("closing database")
	}
}

const reauthHint = "run `oura-scraper auth` to authorize again"
