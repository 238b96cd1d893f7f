package services

import (
	"context"
	"errors"
	"ps1-lightcurve-service/internal/adapters/cache"
	"ps1-lightcurve-service/internal/adapters/repositories"
	"ps1-lightcurve-service/internal/adapters/resolver"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/db"
	"testing"
	"time"
)

func newCache(t *testing.T) *cache.SqliteCoordinateCache {
	t.Helper()

	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSchema(conn, repositories.DriverSqlite); err != nil {
		t.Fatal(err)
	}
	return cache.NewSqliteCoordinateCache(conn)
}

// failingCache errors on every call.
type failingCache struct{}

func (failingCache) GetMany(context.Context, []string) (map[string]domain.Coordinate, error) {
	return nil, errors.New("cache down")
}

func (failingCache) PutMany(context.Context, map[string]domain.Coordinate) error {
	return errors.New("cache down")
}

func (failingCache) Prune(context.Context, time.Time) (int64, error) {
	return 0, errors.New("cache down")
}

func TestCachedResolverHitsCacheOnSecondLookup(t *testing.T) {
	ctx := context.Background()
	mock := resolver.NewMockResolver(map[string]domain.Coordinate{
		"KQ UMa": {RA: 150.0, Dec: 65.0},
	})
	cr := NewCachedResolver(mock, newCache(t))

	first, err := cr.Resolve(ctx, "KQ UMa")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if first.Cached {
		t.Fatal("first lookup should not be cached")
	}
	if first.Coordinate != (domain.Coordinate{RA: 150.0, Dec: 65.0}) {
		t.Fatalf("coordinate = %v", first.Coordinate)
	}

	second, err := cr.Resolve(ctx, " KQ  UMa")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !second.Cached || second.Coordinate != first.Coordinate {
		t.Fatalf("second = %+v, want cached copy of first", second)
	}

	if got := mock.Calls("KQ UMa"); got != 1 {
		t.Fatalf("resolver called %d times, want 1", got)
	}
	if got := mock.Calls(" KQ  UMa"); got != 0 {
		t.Fatalf("respaced name should hit the cache, resolver called %d times", got)
	}
}

func TestCachedResolverDoesNotCacheUnknown(t *testing.T) {
	ctx := context.Background()
	mock := resolver.NewMockResolver(nil)
	cr := NewCachedResolver(mock, newCache(t))

	for i := 0; i < 2; i++ {
		_, err := cr.Resolve(ctx, "Nonexistent  Object")
		var unknown *domain.UnknownObjectError
		if !errors.As(err, &unknown) {
			t.Fatalf("err = %v, want UnknownObjectError", err)
		}
		if unknown.Name != "Nonexistent  Object" {
			t.Fatalf("Name = %q, want the caller's input", unknown.Name)
		}
	}

	if got := mock.Calls("Nonexistent  Object"); got != 2 {
		t.Fatalf("resolver called %d times with the raw name, want 2", got)
	}
	if got := mock.Calls("Nonexistent Object"); got != 0 {
		t.Fatalf("resolver saw the normalized name %d times", got)
	}
}

func TestCachedResolverBlankName(t *testing.T) {
	mock := resolver.NewMockResolver(nil)
	cr := NewCachedResolver(mock, nil)

	_, err := cr.Resolve(context.Background(), " \t")
	var unknown *domain.UnknownObjectError
	if !errors.As(err, &unknown) || unknown.Name != " \t" {
		t.Fatalf("err = %v, want UnknownObjectError naming input", err)
	}
	if mock.Calls("") != 0 {
		t.Fatal("resolver should not be called for blank names")
	}
}

func TestCachedResolverSurvivesCacheFailure(t *testing.T) {
	mock := resolver.NewMockResolver(map[string]domain.Coordinate{"M31": {RA: 10.68, Dec: 41.27}})
	cr := NewCachedResolver(mock, failingCache{})

	res, err := cr.Resolve(context.Background(), "M31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Coordinate.RA != 10.68 {
		t.Fatalf("coordinate = %v", res.Coordinate)
	}
}

func TestCachedResolverSendsNameUnchanged(t *testing.T) {
	mock := resolver.NewMockResolver(nil)
	mock.FailWith("Cafe\u0301  Nebula ", &domain.DecodeError{Name: "Cafe\u0301  Nebula "})
	cr := NewCachedResolver(mock, newCache(t))

	_, err := cr.Resolve(context.Background(), "Cafe\u0301  Nebula ")
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
	if de.Name != "Cafe\u0301  Nebula " {
		t.Fatalf("DecodeError names %q, want the caller's input", de.Name)
	}
	if mock.Calls("Caf\u00e9 Nebula") != 0 {
		t.Fatal("resolver received the normalized cache key")
	}
}

func TestCachedResolverPassesThroughTransportErrors(t *testing.T) {
	mock := resolver.NewMockResolver(nil)
	mock.FailWith("M31", &domain.TransportError{Op: "mast lookup", StatusCode: 503})
	cr := NewCachedResolver(mock, newCache(t))

	_, err := cr.Resolve(context.Background(), "M31")
	var te *domain.TransportError
	if !errors.As(err, &te) || te.StatusCode != 503 {
		t.Fatalf("err = %v, want TransportError 503", err)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  KQ   UMa ":  "KQ UMa",
		"M31":          "M31",
		"\t":           "",
		"Cafe\u0301":   "Caf\u00e9",
		"alpha\nCen A": "alpha Cen A",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
