package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PARKDESK_POSTGRES_DSN", "postgres://parkdesk:pw@localhost:5432/parkdesk")
	t.Setenv("PARKDESK_JWT_SECRET", "s3cret")
	t.Setenv("PARKDESK_HTTP_PORT", "9090")
	t.Setenv("PARKDESK_REDIS_TTL", "600")
	t.Setenv("PARKDESK_UTC_OFFSET_MINUTES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddress() != ":9090" {
		t.Fatalf("HTTPAddress = %q, want :9090", cfg.HTTPAddress())
	}
	if cfg.ActiveSessionTTL() != 10*time.Minute {
		t.Fatalf("ActiveSessionTTL = %s, want 10m", cfg.ActiveSessionTTL())
	}
	if _, offset := time.Now().In(cfg.FacilityZone()).Zone(); offset != 0 {
		t.Fatalf("expected UTC facility zone, got offset %d", offset)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PARKDESK_POSTGRES_DSN", "postgres://localhost/parkdesk")
	t.Setenv("PARKDESK_JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Fatalf("default HTTPAddress = %q", cfg.HTTPAddress())
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Fatalf("default TokenTTL = %s", cfg.TokenTTL())
	}
	if _, offset := time.Now().In(cfg.FacilityZone()).Zone(); offset != 330*60 {
		t.Fatalf("default facility offset = %d, want +05:30", offset)
	}
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("PARKDESK_POSTGRES_DSN", "")
	t.Setenv("PARKDESK_JWT_SECRET", "s3cret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without database dsn")
	}

	t.Setenv("PARKDESK_POSTGRES_DSN", "postgres://localhost/parkdesk")
	t.Setenv("PARKDESK_JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without auth secret")
	}
}
