package ports

import (
	"context"
	"ps1-lightcurve-service/internal/domain"
)

// Tabular query result: named columns with string cells.
// Typed accessors live on the concrete table type.
type Table interface {
	Columns() []string
	Len() int
	String(row int, col string) (string, error)
	Float(row int, col string) (float64, error)
	Int(row int, col string) (int64, error)
}

// Contract for executing ADQL against a catalog service.
type CatalogQuerier interface {
	Query(ctx context.Context, adql string) (Table, error)
}

// Port: a boundary for retrieving the seeded target list.
type TargetRepository interface {
	ListTargets(ctx context.Context) ([]domain.Target, error)
}
