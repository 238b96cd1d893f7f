package services

import (
	"context"
	"ps1-lightcurve-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

const defaultResolveConcurrency = 4

// Resolver is the lookup used by the batch and light-curve services.
type Resolver interface {
	Resolve(ctx context.Context, name string) (domain.Resolution, error)
}

// Outcome of resolving one name in a batch. Exactly one of Resolution or
// Err is meaningful.
type TargetResult struct {
	Name       string
	Resolution domain.Resolution
	Err        error
}

// ResolveTargets resolves names with at most limit lookups in flight.
// Results keep the input order. A failure for one name does not stop the
// others; only context cancellation ends the batch early.
func ResolveTargets(ctx context.Context, r Resolver, names []string, limit int) ([]TargetResult, error) {
	if limit <= 0 {
		limit = defaultResolveConcurrency
	}

	results := make([]TargetResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := r.Resolve(gctx, name)
			results[i] = TargetResult{Name: name, Resolution: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
