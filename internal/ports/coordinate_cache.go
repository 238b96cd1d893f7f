package ports

import (
	"context"
	"ps1-lightcurve-service/internal/domain"
	"time"
)

// Port: persistent name -> coordinate memo. Keys are normalized by the caller.
type CoordinateCache interface {
	// Return the cached coordinates for the subset of names present.
	GetMany(ctx context.Context, names []string) (map[string]domain.Coordinate, error)
	// Store name -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinate) error
	// Remove entries resolved before the cutoff; returns the number removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
