package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Process configuration assembled from the environment (optionally primed
// from a .env file by the caller).
type Config struct {
	Port string

	DBDriver    string // "sqlite" or "postgres"
	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisAddr string
	RedisPass string
	RedisDB   int

	CacheTTL           time.Duration
	CachePruneSchedule string

	MastBaseURL     string
	MastTimeout     time.Duration
	MastMaxAttempts int
	MastUserAgent   string

	TAPBaseURL string
	TAPTimeout time.Duration
}

// Get returns the value of key or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: parse int %q: %w", key, v, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: parse duration %q: %w", key, v, err)
	}
	return d, nil
}

// Load reads the full configuration, applying defaults for unset keys.
func Load() (Config, error) {
	cfg := Config{
		Port:               Get("PORT", "8080"),
		DBDriver:           strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:             Get("DB_PATH", "data/app.db"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		SeedPath:           Get("SEED_PATH", "data/seeds/targets.json"),
		RedisAddr:          Get("REDIS_ADDR", ""),
		RedisPass:          Get("REDIS_PASS", ""),
		CachePruneSchedule: Get("CACHE_PRUNE_SCHEDULE", "@daily"),
		MastBaseURL:        Get("MAST_BASE_URL", "https://mast.stsci.edu"),
		MastUserAgent:      Get("MAST_USER_AGENT", "ps1-lightcurve-service/1.0"),
		TAPBaseURL:         Get("TAP_BASE_URL", "https://mast.stsci.edu/vo-tap/api/v0.1/ps1dr2"),
	}

	var err error
	if cfg.RedisDB, err = GetInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = GetDuration("CACHE_TTL", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.MastTimeout, err = GetDuration("MAST_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.MastMaxAttempts, err = GetInt("MAST_MAX_ATTEMPTS", 1); err != nil {
		return Config{}, err
	}
	if cfg.TAPTimeout, err = GetDuration("TAP_TIMEOUT", 2*time.Minute); err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.MastMaxAttempts < 1 {
		return Config{}, fmt.Errorf("config: MAST_MAX_ATTEMPTS must be >= 1, got %d", cfg.MastMaxAttempts)
	}

	return cfg, nil
}
