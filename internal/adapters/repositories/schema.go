package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Supported database drivers.
const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS targets (
		name TEXT PRIMARY KEY,
		note TEXT NOT NULL DEFAULT ''
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS coordinate_cache (
		name TEXT PRIMARY KEY,
		ra_deg REAL NOT NULL,
		dec_deg REAL NOT NULL,
		resolved_at INTEGER NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_coordinate_cache_resolved_at
	ON coordinate_cache(resolved_at);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS targets (
		name TEXT PRIMARY KEY,
		note TEXT NOT NULL DEFAULT ''
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS coordinate_cache (
		name TEXT PRIMARY KEY,
		ra_deg DOUBLE PRECISION NOT NULL,
		dec_deg DOUBLE PRECISION NOT NULL,
		resolved_at TIMESTAMPTZ NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_coordinate_cache_resolved_at
	ON coordinate_cache(resolved_at);
	`,
}

// Initialize the database schema for the given driver.
func InitSchema(db *sql.DB, driver string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case DriverSqlite:
		statements = sqliteSchema
	case DriverPostgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type TargetSeed struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

// Populate the targets table from a JSON file.
func SeedFromJSON(db *sql.DB, driver string, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed targets: read %q: %w", jsonPath, err)
	}

	var data []TargetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed targets: parse json: %w", err)
	}

	return SeedTargets(db, driver, data)
}

// SeedTargets upserts the given targets.
func SeedTargets(db *sql.DB, driver string, data []TargetSeed) error {
	rows := make([]TargetSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed targets: item at index %d: name cannot be empty", i+1)
		}
		rows = append(rows, TargetSeed{Name: name, Note: strings.TrimSpace(item.Note)})
	}

	var query string
	switch driver {
	case DriverSqlite:
		query = `
		INSERT OR REPLACE INTO targets (
			name,
			note
		)
		VALUES (?, ?);
		`
	case DriverPostgres:
		query = `
		INSERT INTO targets (name, note)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET note = EXCLUDED.note;
		`
	default:
		return fmt.Errorf("seed targets: unsupported driver %q", driver)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed targets: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed targets: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range rows {
		if _, err := stmt.Exec(t.Name, t.Note); err != nil {
			return fmt.Errorf("seed targets: insert name=%q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed targets: commit tx: %w", err)
	}

	return nil
}
