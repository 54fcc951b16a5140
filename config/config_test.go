package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cleanupEnv := func() {
		os.Unsetenv("VEGKIOSK_SERVER_PORT")
		os.Unsetenv("VEGKIOSK_SERVER_ENVIRONMENT")
		os.Unsetenv("VEGKIOSK_GEMINI_PROJECT_ID")
		os.Unsetenv("VEGKIOSK_GEMINI_LOCATION")
		os.Unsetenv("VEGKIOSK_GEMINI_MODEL")
		os.Unsetenv("VEGKIOSK_DATABASE_PATH")
		os.Unsetenv("VEGKIOSK_CACHE_TTL")
		os.Unsetenv("VEGKIOSK_RATELIMIT_PER_IP")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VEGKIOSK_GEMINI_PROJECT_ID", "test-project")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Gemini.Location != "us-central1" {
			t.Errorf("Gemini.Location = %s, want us-central1", cfg.Gemini.Location)
		}
		if cfg.Gemini.Model != "gemini-2.0-flash" {
			t.Errorf("Gemini.Model = %s, want gemini-2.0-flash", cfg.Gemini.Model)
		}
		if cfg.Database.Path != "data/kiosk.db" {
			t.Errorf("Database.Path = %s, want data/kiosk.db", cfg.Database.Path)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VEGKIOSK_GEMINI_PROJECT_ID", "test-project")
		os.Setenv("VEGKIOSK_SERVER_PORT", "9090")
		os.Setenv("VEGKIOSK_SERVER_ENVIRONMENT", "production")
		os.Setenv("VEGKIOSK_GEMINI_MODEL", "gemini-2.5-pro")
		os.Setenv("VEGKIOSK_DATABASE_PATH", "/tmp/test.db")
		os.Setenv("VEGKIOSK_CACHE_TTL", "30m")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Gemini.Model != "gemini-2.5-pro" {
			t.Errorf("Gemini.Model = %s, want gemini-2.5-pro", cfg.Gemini.Model)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Database.Path = %s, want /tmp/test.db", cfg.Database.Path)
		}
		if cfg.Cache.TTL != 30*time.Minute {
			t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
		}
	})

	t.Run("fails without gemini project id", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want missing project id error")
		}
	})
}
