package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "MAST_TIMEOUT", "MAST_MAX_ATTEMPTS", "CACHE_TTL", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.MastTimeout != 30*time.Second {
		t.Errorf("MastTimeout = %v, want 30s", cfg.MastTimeout)
	}
	if cfg.MastMaxAttempts != 1 {
		t.Errorf("MastMaxAttempts = %d, want 1", cfg.MastMaxAttempts)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ps1")
	t.Setenv("MAST_TIMEOUT", "5s")
	t.Setenv("MAST_MAX_ATTEMPTS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.MastTimeout != 5*time.Second {
		t.Errorf("MastTimeout = %v, want 5s", cfg.MastTimeout)
	}
	if cfg.MastMaxAttempts != 3 {
		t.Errorf("MastMaxAttempts = %d, want 3", cfg.MastMaxAttempts)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url": {"DB_DRIVER": "postgres", "DATABASE_URL": ""},
		"unknown driver":       {"DB_DRIVER": "mysql"},
		"bad duration":         {"DB_DRIVER": "sqlite", "MAST_TIMEOUT": "soon"},
		"zero attempts":        {"DB_DRIVER": "sqlite", "MAST_TIMEOUT": "", "MAST_MAX_ATTEMPTS": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
