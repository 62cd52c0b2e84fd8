package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	platformstrings "domaincheck/pkg/platform/strings"
)

const (
	defaultPort         = "3000"
	defaultTokenTTL     = 24 * time.Hour
	defaultWhoisTimeout = 30 * time.Second
)

// Config is the immutable process configuration, built once in main.
type Config struct {
	Server Server
	Auth   Auth
	Whois  Whois
	Log    Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string
	CORSAllowedOrigins []string
	IncludeWhoisData   bool
}

// Auth configures the token gate. When Enabled is false the check endpoint is
// public and no tokens are issued.
type Auth struct {
	Enabled    bool
	JWTSecret  string
	APIKey     string
	APIKeyHash string
	TokenTTL   time.Duration
}

// Whois configures the registry client.
type Whois struct {
	Timeout time.Duration
}

// Log selects the slog handler.
type Log struct {
	Level  string
	Format string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Call LoadEnv first to populate the environment from .env and secret stores.
func FromEnv() (Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = defaultPort
		}
		addr = ":" + port
	}

	authEnabled, err := boolEnv("AUTH_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	includeWhois, err := boolEnv("INCLUDE_WHOIS_DATA", true)
	if err != nil {
		return Config{}, err
	}
	tokenTTL, err := durationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return Config{}, err
	}
	whoisTimeout, err := durationEnv("WHOIS_TIMEOUT", defaultWhoisTimeout)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server: Server{
			Addr:               addr,
			CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			IncludeWhoisData:   includeWhois,
		},
		Auth: Auth{
			Enabled:    authEnabled,
			JWTSecret:  os.Getenv("JWT_SECRET"),
			APIKey:     os.Getenv("API_TOKEN"),
			APIKeyHash: os.Getenv("API_TOKEN_HASH"),
			TokenTTL:   tokenTTL,
		},
		Whois: Whois{
			Timeout: whoisTimeout,
		},
		Log: Log{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when AUTH_ENABLED is true")
		}
		if c.Auth.TokenTTL <= 0 {
			return errors.New("TOKEN_TTL must be positive")
		}
	}
	if c.Whois.Timeout < 0 {
		return errors.New("WHOIS_TIMEOUT must not be negative")
	}
	return nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func listEnv(key string, def []string) []string {
	if out := platformstrings.SplitList(os.Getenv(key)); len(out) > 0 {
		return out
	}
	return def
}
