package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8000")
	}
	if cfg.AuthProvider.Timeout != 10*time.Second {
		t.Errorf("AuthProvider.Timeout = %v, want 10s", cfg.AuthProvider.Timeout)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Server.AllowedOrigins = %v, want default frontend origin", cfg.Server.AllowedOrigins)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("Scheduler.Enabled = false, want true by default")
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("AUTH_PROVIDER_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9100")
	}
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.Server.AllowedOrigins[i], want[i])
		}
	}
	if cfg.Scheduler.Enabled {
		t.Error("Scheduler.Enabled = true, want false")
	}
	if cfg.AuthProvider.Timeout != 3*time.Second {
		t.Errorf("AuthProvider.Timeout = %v, want 3s", cfg.AuthProvider.Timeout)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() with invalid DB_PORT should return an error")
	}
}

func TestConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.internal", Port: 5433, User: "svc", Password: "pw",
		DBName: "finance", SSLMode: "require",
	}
	got := c.ConnectionString()
	want := "host=db.internal port=5433 user=svc password=pw dbname=finance sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

func TestConnectionStringDatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://svc:pw@db.internal/finance")
	c := DatabaseConfig{Host: "ignored"}
	if got := c.ConnectionString(); got != "postgres://svc:pw@db.internal/finance" {
		t.Errorf("ConnectionString() = %q, want DATABASE_URL value", got)
	}
}
