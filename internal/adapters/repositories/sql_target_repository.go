package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ps1-lightcurve-service/internal/domain"
)

// SQL-backed implementation of the TargetRepository port. The query is
// portable across SQLite and Postgres.
type SQLTargetRepository struct{ DB *sql.DB }

func NewSQLTargetRepository(db *sql.DB) *SQLTargetRepository {
	return &SQLTargetRepository{DB: db}
}

// Return all seeded targets ordered by name.
func (s *SQLTargetRepository) ListTargets(ctx context.Context) ([]domain.Target, error) {
	if s.DB == nil {
		return nil, errors.New("target repository: DB is nil")
	}

	query := `
	SELECT
		name,
		note
	FROM targets
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list targets: query targets table: %w", err)
	}
	defer rows.Close()

	targets := make([]domain.Target, 0, 16)
	for rows.Next() {
		var t domain.Target
		if err := rows.Scan(&t.Name, &t.Note); err != nil {
			return nil, fmt.Errorf("list targets: scan row: %w", err)
		}
		targets = append(targets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list targets: row iteration: %w", err)
	}

	return targets, nil
}
