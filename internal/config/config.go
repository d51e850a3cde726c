// Package config loads scraper settings from defaults, an optional YAML file,
// a .env file and OURA_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendDatabase = "database"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultConfigFile = "oura.yaml"
	defaultEnvFile    = ".env"
	defaultSQLitePath = "oura.db"
)

type Settings struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// Pre-provisioned tokens; both must be set to take effect.
	AccessToken  string `yaml:"-"`
	RefreshToken string `yaml:"-"`

	TokenPath    string `yaml:"token_path"`
	TokenBackend string `yaml:"token_backend"`

	DBDriver   string `yaml:"db_driver"`
	DBDSN      string `yaml:"db_dsn"`
	DBHost     string `yaml:"db_host"`
	DBPort     int    `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBDebug    bool   `yaml:"db_debug"`

	ScrapeDays   int    `yaml:"scrape_days"`
	CallbackPort int    `yaml:"callback_port"`
	LogLevel     string `yaml:"log_level"`
	LogPretty    bool   `yaml:"log_pretty"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		TokenPath:    "admin/tokens/oura_tokens.json",
		TokenBackend: BackendDatabase,
		DBDriver:     DriverPostgres,
		DBHost:       "localhost",
		DBPort:       5432,
		DBName:       "health",
		DBUser:       "health",
		ScrapeDays:   7,
		CallbackPort: 8080,
		LogLevel:     "info",
	}
}

// Load builds Settings from every source. A config file named by
// OURA_CONFIG_FILE must exist; the default oura.yaml is optional.
func Load() (*Settings, error) {
	envFile := getEnv("OURA_ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	s := Default()

	path := os.Getenv("OURA_CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := s.mergeFile(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, err
		}
	}

	s.applyEnv()
	return s, nil
}

func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyEnv() {
	s.ClientID = getEnv("OURA_CLIENT_ID", s.ClientID)
	s.ClientSecret = getEnv("OURA_CLIENT_SECRET", s.ClientSecret)
	s.AccessToken = getEnv("OURA_ACCESS_TOKEN", s.AccessToken)
	s.RefreshToken = getEnv("OURA_REFRESH_TOKEN", s.RefreshToken)
	s.TokenPath = getEnv("OURA_TOKEN_PATH", s.TokenPath)
	s.TokenBackend = strings.ToLower(getEnv("OURA_TOKEN_BACKEND", s.TokenBackend))
	s.DBDriver = strings.ToLower(getEnv("OURA_DB_DRIVER", s.DBDriver))
	s.DBDSN = getEnv("OURA_DB_DSN", s.DBDSN)
	s.DBHost = getEnv("OURA_DB_HOST", s.DBHost)
	s.DBPort = getEnvInt("OURA_DB_PORT", s.DBPort)
	s.DBName = getEnv("OURA_DB_NAME", s.DBName)
	s.DBUser = getEnv("OURA_DB_USER", s.DBUser)
	s.DBPassword = getEnv("OURA_DB_PASSWORD", s.DBPassword)
	s.DBDebug = getEnvBool("OURA_DB_DEBUG", s.DBDebug)
	s.ScrapeDays = getEnvInt("OURA_SCRAPE_DAYS", s.ScrapeDays)
	s.CallbackPort = getEnvInt("OURA_CALLBACK_PORT", s.CallbackPort)
	s.LogLevel = getEnv("OURA_LOG_LEVEL", s.LogLevel)
	s.LogPretty = getEnvBool("OURA_LOG_PRETTY", s.LogPretty)
}

// Validate rejects settings no command can run with.
func (s *Settings) Validate() error {
	switch s.TokenBackend {
	case BackendFile, BackendDatabase:
	default:
		return fmt.Errorf("unknown token backend %q (want %s or %s)", s.TokenBackend, BackendFile, BackendDatabase)
	}
	switch s.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q (want %s or %s)", s.DBDriver, DriverPostgres, DriverSQLite)
	}
	// A scrape holds SQLite's single write lock for the whole run, so a token
	// refreshed mid-run could not be written to the same file.
	if s.DBDriver == DriverSQLite && s.TokenBackend == BackendDatabase {
		return fmt.Errorf("token backend %q cannot share a %s database with scrape runs; use token_backend: %s", BackendDatabase, DriverSQLite, BackendFile)
	}
	if s.ScrapeDays <= 0 {
		return fmt.Errorf("scrape days must be positive, got %d", s.ScrapeDays)
	}
	if s.CallbackPort < 0 || s.CallbackPort > 65535 {
		return fmt.Errorf("callback port out of range: %d", s.CallbackPort)
	}
	return nil
}

// RequireClient reports missing OAuth client credentials.
func (s *Settings) RequireClient() error {
	if s.ClientID == "" || s.ClientSecret == "" {
		return errors.New("OURA_CLIENT_ID and OURA_CLIENT_SECRET must be set")
	}
	return nil
}

// DatabaseURL is the DSN handed to the driver. An explicit DSN wins;
// otherwise postgres is assembled from its parts and sqlite uses a local file.
func (s *Settings) DatabaseURL() string {
	if s.DBDSN != "" {
		return s.DBDSN
	}
	if s.DBDriver == DriverSQLite {
		return defaultSQLitePath
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", s.DBHost, s.DBPort),
		Path:   "/" + s.DBName,
	}
	if s.DBPassword != "" {
		u.User = url.UserPassword(s.DBUser, s.DBPassword)
	} else {
		u.User = url.User(s.DBUser)
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
