package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DEFAULT_SLOT_FREQUENCY_MIN", "")

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Fatalf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.RedisURL != "" {
		t.Fatalf("RedisURL should default to disabled, got %q", cfg.RedisURL)
	}
	if cfg.DefaultSlotFrequencyMin != 30 {
		t.Fatalf("DefaultSlotFrequencyMin = %d", cfg.DefaultSlotFrequencyMin)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DEFAULT_SLOT_FREQUENCY_MIN", "15")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Fatalf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Fatalf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.DefaultSlotFrequencyMin != 15 {
		t.Fatalf("DefaultSlotFrequencyMin = %d", cfg.DefaultSlotFrequencyMin)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("DEFAULT_SLOT_FREQUENCY_MIN", "zero")

	cfg := Load()
	if cfg.DefaultSlotFrequencyMin != 30 {
		t.Fatalf("DefaultSlotFrequencyMin = %d, want fallback 30", cfg.DefaultSlotFrequencyMin)
	}
}
