package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_IDS", "11,22")
	t.Setenv("IDEMPOTENCY_TTL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.Currency != "INR" || cfg.DBMaxConns != 20 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.IdempotencyTTL != 2*time.Hour {
		t.Errorf("ttl = %s", cfg.IdempotencyTTL)
	}
	if !cfg.IsAdmin(22) || cfg.IsAdmin(33) {
		t.Errorf("admin ids = %v", cfg.AdminIDs)
	}
	if got := cfg.AdminIDsString(); got != "11,22" {
		t.Errorf("AdminIDsString = %q", got)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := (&Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
