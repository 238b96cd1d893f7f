package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/metrics"
	"ps1-lightcurve-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLCoordinateCache is a Postgres-backed cache mapping object names to
// coordinates. It expects the pgx stdlib driver.
type SQLCoordinateCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLCoordinateCache(db *sql.DB) *SQLCoordinateCache {
	return &SQLCoordinateCache{DB: db, now: time.Now}
}

// Fetch cached coordinates for the given names.
func (s *SQLCoordinateCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "coordinate.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("coordinate cache: db is nil")
	}

	uniq := uniqueKeys(names)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	q := `
	SELECT name, ra_deg, dec_deg
	FROM coordinate_cache
	WHERE name = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get coordinate cache: query coordinate_cache table: %w", err)
	}
	defer rows.Close()

	out, err := scanCoordinates(rows, len(uniq))
	if err != nil {
		return nil, err
	}

	recordLookups("postgres", len(out), len(uniq))
	return out, nil
}

// Store name -> coordinate mappings in the cache.
func (s *SQLCoordinateCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
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
	INSERT INTO coordinate_cache (name, ra_deg, dec_deg, resolved_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (name) DO UPDATE
	SET ra_deg = EXCLUDED.ra_deg,
		dec_deg = EXCLUDED.dec_deg,
		resolved_at = EXCLUDED.resolved_at;
	`)
	if err != nil {
		return fmt.Errorf("insert coordinate cache: db prepare: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
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

// Prune deletes entries resolved before olderThan.
func (s *SQLCoordinateCache) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("coordinate cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM coordinate_cache WHERE resolved_at < $1;`, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune coordinate cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune coordinate cache: rows affected: %w", err)
	}
	return n, nil
}

func uniqueKeys(names []string) []string {
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}
	return uniq
}

func scanCoordinates(rows *sql.Rows, size int) (map[string]domain.Coordinate, error) {
	out := make(map[string]domain.Coordinate, size)
	for rows.Next() {
		var name string
		var ra, dec float64
		if err := rows.Scan(&name, &ra, &dec); err != nil {
			return nil, fmt.Errorf("get coordinate cache: scan rows: %w", err)
		}
		out[name] = domain.Coordinate{RA: ra, Dec: dec}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get coordinate cache: row iteration: %w", err)
	}
	return out, nil
}

func recordLookups(backend string, hits, total int) {
	metrics.CacheHitsTotal.WithLabelValues(backend).Add(float64(hits))
	metrics.CacheMissesTotal.WithLabelValues(backend).Add(float64(total - hits))
}
