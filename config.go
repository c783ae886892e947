package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/so637/personal-budget-tracker-backend/pkg/logging"

	"github.com/gin-gonic/gin"
)

// devJWTSecret is only used when JWT_SECRET is unset.
const devJWTSecret = "dev-insecure-secret-change"

// Config is read from the environment; main loads ./.env first when present.
type Config struct {
	Addr          string
	DSN           string
	AutoMigrate   bool
	JWTSecret     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AllowTestUser bool
	LogLevel      string
	LogFormat     string
	GinMode       string
}

func loadConfig() (Config, error) {
	cfg := Config{
		Addr:      getenv("HTTP_ADDR", ":8081"),
		DSN:       strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret: getenv("JWT_SECRET", devJWTSecret),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
		GinMode:   getenv("GIN_MODE", gin.ReleaseMode),
	}
	var errs []error
	var err error
	if cfg.AutoMigrate, err = envBool("DB_AUTO_MIGRATE", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.AllowTestUser, err = envBool("ALLOW_TEST_USER", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.AccessTTL, err = envDuration("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.RefreshTTL, err = envDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail later at startup.
func (c Config) Validate() error {
	if c.DSN == "" {
		return errors.New("DB_DSN is not set; a PostgreSQL DSN is required")
	}
	if c.Addr == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.RefreshTTL < c.AccessTTL {
		return fmt.Errorf("REFRESH_TOKEN_TTL (%s) must not be shorter than ACCESS_TOKEN_TTL (%s)", c.RefreshTTL, c.AccessTTL)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", c.LogFormat)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	return nil
}

// UsesDevSecret reports whether tokens are signed with the built-in key.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return def, nil
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return def, fmt.Errorf("invalid %s %q: expected true or false", key, v)
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
