package main

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:       ":8081",
		DSN:        "host=localhost dbname=budget",
		JWTSecret:  "secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		LogLevel:   "info",
		LogFormat:  "text",
		GinMode:    "release",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{name: "valid config", mutate: func(*Config) {}},
		{
			name:        "missing dsn",
			mutate:      func(c *Config) { c.DSN = "" },
			wantErr:     true,
			errorString: "DB_DSN is not set",
		},
		{
			name:        "refresh shorter than access",
			mutate:      func(c *Config) { c.RefreshTTL = time.Minute },
			wantErr:     true,
			errorString: "must not be shorter",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "chatty" },
			wantErr:     true,
			errorString: "invalid log level",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid LOG_FORMAT",
		},
		{
			name:        "invalid gin mode",
			mutate:      func(c *Config) { c.GinMode = "prod" },
			wantErr:     true,
			errorString: "invalid GIN_MODE",
		},
		{
			name:   "json format upper case",
			mutate: func(c *Config) { c.LogFormat = "JSON" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error = %q, want it to contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"HTTP_ADDR", "JWT_SECRET", "DB_AUTO_MIGRATE", "ALLOW_TEST_USER", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT", "GIN_MODE"} {
			t.Setenv(k, "")
		}
		t.Setenv("DB_DSN", "postgres://localhost/budget")
		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.Addr != ":8081" || !cfg.AutoMigrate || !cfg.AllowTestUser {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if cfg.AccessTTL != 15*time.Minute || cfg.RefreshTTL != 720*time.Hour {
			t.Errorf("ttl defaults = %s / %s", cfg.AccessTTL, cfg.RefreshTTL)
		}
		if !cfg.UsesDevSecret() {
			t.Errorf("expected development secret when JWT_SECRET is empty")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/budget")
		t.Setenv("HTTP_ADDR", ":9000")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DB_AUTO_MIGRATE", "false")
		t.Setenv("ALLOW_TEST_USER", "0")
		t.Setenv("ACCESS_TOKEN_TTL", "5m")
		t.Setenv("REFRESH_TOKEN_TTL", "48h")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("GIN_MODE", "test")
		cfg, err := loadConfig()
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.Addr != ":9000" || cfg.AutoMigrate || cfg.AllowTestUser || cfg.UsesDevSecret() {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		if cfg.AccessTTL != 5*time.Minute || cfg.RefreshTTL != 48*time.Hour {
			t.Errorf("ttl = %s / %s", cfg.AccessTTL, cfg.RefreshTTL)
		}
	})

	t.Run("bad values are all reported", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/budget")
		t.Setenv("DB_AUTO_MIGRATE", "maybe")
		t.Setenv("ACCESS_TOKEN_TTL", "soon")
		_, err := loadConfig()
		if err == nil {
			t.Fatalf("expected error")
		}
		for _, want := range []string{"DB_AUTO_MIGRATE", "ACCESS_TOKEN_TTL"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %s", err, want)
			}
		}
	})
}
