package ports

import (
	"context"
	"ps1-lightcurve-service/internal/domain"
)

// Contract for translating an object name into celestial coordinates.
//
// Implementations return *domain.UnknownObjectError when the name is not
// recognized, *domain.TransportError for connection or HTTP status failures,
// and *domain.DecodeError for unusable response bodies.
type NameResolver interface {
	Resolve(ctx context.Context, name string) (domain.Coordinate, error)
}

// Optional extension for resolvers that also report the service's
// canonical spelling of the name.
type CanonicalNameResolver interface {
	NameResolver
	ResolveCanonical(ctx context.Context, name string) (domain.Coordinate, string, error)
}
