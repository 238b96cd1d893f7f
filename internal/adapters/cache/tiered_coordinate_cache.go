package cache

import (
	"context"
	"log/slog"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/ports"
	"time"
)

// TieredCoordinateCache reads through a fast cache (Redis) in front of a
// durable one (SQL). Durable hits are copied back into the fast tier.
type TieredCoordinateCache struct {
	Fast    ports.CoordinateCache
	Durable ports.CoordinateCache
}

func (t *TieredCoordinateCache) GetMany(ctx context.Context, names []string) (map[string]domain.Coordinate, error) {
	out, err := t.Fast.GetMany(ctx, names)
	if err != nil {
		slog.WarnContext(ctx, "fast coordinate cache read failed", "err", err)
		out = map[string]domain.Coordinate{}
	}

	misses := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := out[n]; !ok {
			misses = append(misses, n)
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	durable, err := t.Durable.GetMany(ctx, misses)
	if err != nil {
		return nil, err
	}

	if len(durable) > 0 {
		if err := t.Fast.PutMany(ctx, durable); err != nil {
			slog.WarnContext(ctx, "fast coordinate cache backfill failed", "err", err)
		}
	}
	for k, v := range durable {
		out[k] = v
	}
	return out, nil
}

func (t *TieredCoordinateCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
	if err := t.Durable.PutMany(ctx, results); err != nil {
		return err
	}
	if err := t.Fast.PutMany(ctx, results); err != nil {
		slog.WarnContext(ctx, "fast coordinate cache write failed", "err", err)
	}
	return nil
}

func (t *TieredCoordinateCache) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	return t.Durable.Prune(ctx, olderThan)
}
