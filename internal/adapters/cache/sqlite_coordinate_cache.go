package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLite backed cache mapping object names to coordinates.
// Name keys are expected to be normalized by the caller.
type SqliteCoordinateCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteCoordinateCache(db *sql.DB) *SqliteCoordinateCache {
	return &SqliteCoordinateCache{DB: db, now: time.Now}
}

// Fetch cached coordinates for the given names.
func (s *SqliteCoordinateCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "coordinate.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("coordinate cache: db is nil")
	}

	uniq := uniqueKeys(names)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	ph := make([]string, 0, len(uniq))
	args := make([]any, 0, len(uniq))
	for _, n := range uniq {
		ph = append(ph, "?")
		args = append(args, n)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		name,
		ra_deg,
		dec_deg
	FROM coordinate_cache
	WHERE name IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get coordinate cache: query coordinate_cache table: %w", err)
	}
	defer rows.Close()

	out, err := scanCoordinates(rows, len(uniq))
	if err != nil {
		return nil, err
	}

	recordLookups("sqlite", len(out), len(uniq))
	return out, nil
}

// Store name -> coordinate mappings in the cache.
func (s *SqliteCoordinateCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
	if s.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO coordinate_cache (
		name,
		ra_deg,
		dec_deg,
		resolved_at
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db prepare: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC().Unix()
	for name, c := range results {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("insert coordinate cache: empty name key")
		}

		if _, err := stmt.ExecContext(ctx, name, c.RA, c.Dec, now); err != nil {
			return fmt.Errorf("insert coordinate cache name=%q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert coordinate cache commit: %w", err)
	}

	return nil
}

// Prune deletes entries resolved before olderThan. resolved_at is stored as
// unix seconds.
func (s *SqliteCoordinateCache) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("coordinate cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM coordinate_cache WHERE resolved_at < ?;`, olderThan.UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("prune coordinate cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune coordinate cache: rows affected: %w", err)
	}
	return n, nil
}
