package services

import (
	"context"
	"errors"
	"log/slog"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/obs"
	"ps1-lightcurve-service/internal/ports"
)

// CachedResolver puts a CoordinateCache in front of a NameResolver.
//
// Cache failures are logged and never fail a lookup. Only successful
// resolutions are stored, so unknown names are always re-queried.
type CachedResolver struct {
	Resolver ports.NameResolver
	Cache    ports.CoordinateCache
}

func NewCachedResolver(resolver ports.NameResolver, cache ports.CoordinateCache) *CachedResolver {
	return &CachedResolver{Resolver: resolver, Cache: cache}
}

// Resolve looks name up in the cache and falls back to the resolver.
// Errors from the resolver are returned unwrapped so callers can match the
// domain error types directly.
func (c *CachedResolver) Resolve(ctx context.Context, name string) (_ domain.Resolution, err error) {
	defer obs.Time(ctx, "resolve")(&err)

	if c.Resolver == nil {
		return domain.Resolution{}, errors.New("cached resolver: resolver is nil")
	}

	key := NormalizeName(name)
	if key == "" {
		return domain.Resolution{}, &domain.UnknownObjectError{Name: name}
	}

	if c.Cache != nil {
		hits, err := c.Cache.GetMany(ctx, []string{key})
		if err != nil {
			slog.WarnContext(ctx, "coordinate cache read failed", "name", key, "err", err)
		} else if coord, ok := hits[key]; ok {
			return domain.Resolution{Name: name, Coordinate: coord, Cached: true}, nil
		}
	}

	var (
		coord     domain.Coordinate
		canonical string
	)
	// The normalized key only addresses the cache; the remote service sees
	// the name exactly as given.
	if cr, ok := c.Resolver.(ports.CanonicalNameResolver); ok {
		coord, canonical, err = cr.ResolveCanonical(ctx, name)
	} else {
		coord, err = c.Resolver.Resolve(ctx, name)
	}
	if err != nil {
		return domain.Resolution{}, err
	}

	if c.Cache != nil {
		if err := c.Cache.PutMany(ctx, map[string]domain.Coordinate{key: coord}); err != nil {
			slog.WarnContext(ctx, "coordinate cache write failed", "name", key, "err", err)
		}
	}

	return domain.Resolution{Name: name, CanonicalName: canonical, Coordinate: coord}, nil
}
