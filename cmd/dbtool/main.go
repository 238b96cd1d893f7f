package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"ps1-lightcurve-service/internal/adapters/cache"
	"ps1-lightcurve-service/internal/adapters/repositories"
	"ps1-lightcurve-service/internal/config"
	"ps1-lightcurve-service/internal/platform/db"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares a Postgres database: schema, target seed, and optional
// coordinate cache pruning.
func main() {
	prune := flag.Duration("prune", 0, "delete cached coordinates older than this (0 disables)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/targets.json")
	initAndSeed(conn, seedPath)

	if *prune > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := cache.NewSQLCoordinateCache(conn).Prune(ctx, time.Now().Add(-*prune))
		if err != nil {
			log.Fatalf("prune failed: %v", err)
		}
		log.Printf("Pruned %d cached coordinates.", n)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn, repositories.DriverPostgres); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding targets...")
	if err := repositories.SeedFromJSON(conn, repositories.DriverPostgres, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
