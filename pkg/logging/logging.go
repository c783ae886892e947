// Package logging builds the application's slog logger and the gin middleware
// that writes one structured line per request.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldUserID     = "user_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output io.Writer
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// New returns a logger writing text or JSON records to cfg.Output.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(cfg.Output, opts)
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.Format)
	}
	return slog.New(handler), nil
}

// Gorm adapts l for gorm's logger interface. level picks what gorm reports;
// every line it emits is written at warn.
func Gorm(l *slog.Logger, slowThreshold time.Duration, level logger.LogLevel) logger.Interface {
	w := slog.NewLogLogger(l.With(FieldComponent, "gorm").Handler(), slog.LevelWarn)
	return logger.New(w, logger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
