package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/serveportal")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("BREVO_API_KEY", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173")
	t.Setenv("CORS_ALLOW_ALL", "false")
	t.Setenv("GOTENBERG_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetEmailEnabled() {
		t.Fatal("email must stay disabled without a provider")
	}
	if cfg.GetDraftTTL() != 72*time.Hour {
		t.Fatalf("unexpected draft ttl %s", cfg.GetDraftTTL())
	}
	if cfg.GetMinioBucketAffidavits() != "affidavits" {
		t.Fatalf("unexpected bucket %q", cfg.GetMinioBucketAffidavits())
	}
	if cfg.IsGotenbergEnabled() {
		t.Fatal("gotenberg must be disabled without a url")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_ACCESS_SECRET") {
		t.Fatalf("expected JWT_ACCESS_SECRET error, got %v", err)
	}
}

func TestLoadRequiresSenderAddressWhenEmailEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("EMAIL_FROM_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing EMAIL_FROM_ADDRESS")
	}
}

func TestWildcardOriginRejectsCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard origin with credentials")
	}

	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatal("expected wildcard origin to allow all")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split %v", got)
	}
}
