package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/so637/personal-budget-tracker-backend/auth"
	"github.com/so637/personal-budget-tracker-backend/pkg/database"
	"github.com/so637/personal-budget-tracker-backend/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; variables already in the environment win.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(2)
	}

	db, err := database.Open(cfg.DSN, log, cfg.LogLevel == "debug")
	if err != nil {
		log.Error("database unavailable", logging.FieldError, err)
		os.Exit(1)
	}

	// `./app migrate` runs AutoMigrate and exits.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := database.Migrate(db, log); err != nil {
			os.Exit(1)
		}
		fmt.Println("migration completed")
		return
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db, log); err != nil {
			log.Warn("continuing with partial schema", logging.FieldError, err)
		}
	}

	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET not set, signing tokens with the development key")
	}
	authSvc := auth.NewService(db, auth.Config{
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	gin.SetMode(cfg.GinMode)
	r := newRouter(newServer(db, authSvc, log, cfg.AllowTestUser))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", logging.FieldError, err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", logging.FieldError, err)
	}
}
