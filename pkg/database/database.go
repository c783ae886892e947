// Package database opens the PostgreSQL store shared by the API and the
// maintenance commands.
package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/so637/personal-budget-tracker-backend/models"
	"github.com/so637/personal-budget-tracker-backend/pkg/logging"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// Open connects to dsn. verbose logs every statement instead of only slow
// queries and errors.
func Open(dsn string, log *slog.Logger, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logging.Gorm(log, slowQuery, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// DSNFromEnv loads ./.env when present and returns DB_DSN.
func DSNFromEnv() (string, error) {
	_ = godotenv.Load()
	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		return "", errors.New("DB_DSN not set in environment")
	}
	return dsn, nil
}

// Migrate creates or updates every table. Models are migrated one by one so a
// failure on one does not block the others; all failures are returned.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	var errs []error
	for _, m := range models.All() {
		if err := db.AutoMigrate(m); err != nil {
			log.Warn("migration failed", "model", fmt.Sprintf("%T", m), logging.FieldError, err)
			errs = append(errs, fmt.Errorf("migrate %T: %w", m, err))
		}
	}
	return errors.Join(errs...)
}
