package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Fatalf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.Addr() != ":8090" {
		t.Fatalf("Addr() = %q, want :8090", cfg.Addr())
	}
	if !cfg.CORSAllowCredentials {
		t.Fatalf("CORSAllowCredentials default should be true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		t.Fatalf("expected default CORS origins")
	}
	if cfg.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("JWTAccessTTL = %v, want 15m", cfg.JWTAccessTTL)
	}
	if cfg.MaxUploadBytes != 50<<20 {
		t.Fatalf("MaxUploadBytes = %d, want 50MiB", cfg.MaxUploadBytes)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	t.Setenv("JWT_ACCESS_TTL", "1h")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("SCORING_WEBHOOK_URL", "https://scoring.example.com/webhook")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("Port = %q, want 9000", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowCredentials {
		t.Fatalf("CORSAllowCredentials should be false")
	}
	if cfg.JWTAccessTTL != time.Hour {
		t.Fatalf("JWTAccessTTL = %v, want 1h", cfg.JWTAccessTTL)
	}
	if cfg.DBMaxConns != 5 {
		t.Fatalf("DBMaxConns = %d, want 5", cfg.DBMaxConns)
	}
	if cfg.ScoringWebhookURL != "https://scoring.example.com/webhook" {
		t.Fatalf("ScoringWebhookURL = %q", cfg.ScoringWebhookURL)
	}
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	cfg := Load()

	if cfg.DBMaxConns != 25 {
		t.Fatalf("DBMaxConns = %d, want fallback 25", cfg.DBMaxConns)
	}
	if cfg.JWTAccessTTL != 15*time.Minute {
		t.Fatalf("JWTAccessTTL = %v, want fallback 15m", cfg.JWTAccessTTL)
	}
}
