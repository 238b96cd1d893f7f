package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"ps1-lightcurve-service/internal/adapters/cache"
	"ps1-lightcurve-service/internal/adapters/repositories"
	"ps1-lightcurve-service/internal/adapters/resolver"
	"ps1-lightcurve-service/internal/adapters/tap"
	"ps1-lightcurve-service/internal/api"
	"ps1-lightcurve-service/internal/config"
	"ps1-lightcurve-service/internal/platform/db"
	"ps1-lightcurve-service/internal/platform/logger"
	"ps1-lightcurve-service/internal/ports"
	"ps1-lightcurve-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// main is the application composition root.
// It wires concrete adapters (SQL/Redis caches, MAST, TAP) behind ports and starts the HTTP server.
func main() {
	log := logger.Setup()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}
	// Re-read LOG_LEVEL/LOG_FORMAT now that .env may have set them.
	log = logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	conn, err := openDB(cfg)
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Initialize schema and seed the target list on startup for local runs.
	if err := initAndSeed(conn, cfg); err != nil {
		log.Error("init database", "err", err)
		os.Exit(1)
	}

	coordCache, closeCache := buildCache(conn, cfg)
	defer closeCache()

	mast, err := resolver.NewMastResolver(resolver.Config{
		BaseURL:     cfg.MastBaseURL,
		UserAgent:   cfg.MastUserAgent,
		Timeout:     cfg.MastTimeout,
		MaxAttempts: cfg.MastMaxAttempts,
	})
	if err != nil {
		log.Error("build resolver", "err", err)
		os.Exit(1)
	}

	cached := services.NewCachedResolver(mast, coordCache)
	router := api.NewRouter(api.Deps{
		Resolver: cached,
		Targets:  repositories.NewSQLTargetRepository(conn),
		LightCurves: &services.LightCurveService{
			Resolver:      cached,
			Catalog:       tap.NewClient(cfg.TAPBaseURL, cfg.TAPTimeout),
			MinDetections: 1,
		},
	})

	pruner, err := schedulePrune(coordCache, cfg)
	if err != nil {
		log.Error("schedule cache prune", "err", err)
		os.Exit(1)
	}
	pruner.Start()
	defer pruner.Stop()

	// Timeouts are tuned for cold TAP queries (external service latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.TAPTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", "addr", srv.Addr, "db", cfg.DBDriver, "redis", cfg.RedisAddr != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DBDriver == repositories.DriverPostgres {
		return db.Open(cfg.DatabaseURL)
	}
	return db.OpenSqlite(cfg.DBPath)
}

func initAndSeed(conn *sql.DB, cfg config.Config) error {
	if err := repositories.InitSchema(conn, cfg.DBDriver); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(cfg.SeedPath); errors.Is(err, os.ErrNotExist) {
		logger.L().Info("no seed file, skipping target seed", "path", cfg.SeedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(conn, cfg.DBDriver, cfg.SeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// buildCache picks the durable SQL cache for the configured driver and, when
// REDIS_ADDR is set, fronts it with Redis.
func buildCache(conn *sql.DB, cfg config.Config) (ports.CoordinateCache, func()) {
	var durable ports.CoordinateCache
	if cfg.DBDriver == repositories.DriverPostgres {
		durable = cache.NewSQLCoordinateCache(conn)
	} else {
		durable = cache.NewSqliteCoordinateCache(conn)
	}

	if cfg.RedisAddr == "" {
		return durable, func() {}
	}

	rc := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB})
	tiered := &cache.TieredCoordinateCache{
		Fast:    cache.NewRedisCoordinateCache(rc, cfg.CacheTTL),
		Durable: durable,
	}
	return tiered, func() { _ = rc.Close() }
}

// schedulePrune removes cache entries older than CACHE_TTL on CACHE_PRUNE_SCHEDULE.
func schedulePrune(c ports.CoordinateCache, cfg config.Config) (*cron.Cron, error) {
	sched := cron.New()
	_, err := sched.AddFunc(cfg.CachePruneSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := c.Prune(ctx, time.Now().Add(-cfg.CacheTTL))
		if err != nil {
			logger.L().Error("coordinate cache prune failed", "err", err)
			return
		}
		logger.L().Info("coordinate cache pruned", "removed", n)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule prune %q: %w", cfg.CachePruneSchedule, err)
	}
	return sched, nil
}
