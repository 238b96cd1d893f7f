package cache

import (
	"context"
	"fmt"
	"os"
	"ps1-lightcurve-service/internal/adapters/repositories"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/db"
	"testing"
	"time"
)

// newPostgresCache connects to DATABASE_URL and skips when it is unset.
// Keys are prefixed per test so runs against a shared database don't collide.
func newPostgresCache(t *testing.T) (*SQLCoordinateCache, string) {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSchema(conn, repositories.DriverPostgres); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	prefix := fmt.Sprintf("test-%s-%d:", t.Name(), time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM coordinate_cache WHERE name LIKE $1`, prefix+"%")
	})
	return NewSQLCoordinateCache(conn), prefix
}

func TestSQLCoordinateCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, p := newPostgresCache(t)

	in := map[string]domain.Coordinate{
		p + "KQ UMa": {RA: 150.0, Dec: 65.0},
		p + "M31":    {RA: 10.684708, Dec: 41.26875},
	}
	if err := c.PutMany(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{p + "KQ UMa", p + "M31", p + "M31", " ", p + "Vega"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[p+"M31"] != in[p+"M31"] || got[p+"KQ UMa"] != in[p+"KQ UMa"] {
		t.Fatalf("got %v, want %v", got, in)
	}

	if err := c.PutMany(ctx, map[string]domain.Coordinate{p + "M31": {RA: 11, Dec: 41}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = c.GetMany(ctx, []string{p + "M31"})
	if err != nil {
		t.Fatal(err)
	}
	if got[p+"M31"] != (domain.Coordinate{RA: 11, Dec: 41}) {
		t.Fatalf("upsert not applied: %v", got)
	}
}

func TestSQLCoordinateCachePrune(t *testing.T) {
	ctx := context.Background()
	c, p := newPostgresCache(t)

	// Far in the past so rows written by other tests are never pruned here.
	old := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return old }
	if err := c.PutMany(ctx, map[string]domain.Coordinate{p + "stale": {RA: 1, Dec: 1}}); err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return old.Add(48 * time.Hour) }
	if err := c.PutMany(ctx, map[string]domain.Coordinate{p + "fresh": {RA: 2, Dec: 2}}); err != nil {
		t.Fatal(err)
	}

	n, err := c.Prune(ctx, old.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n < 1 {
		t.Fatalf("pruned %d rows, want at least 1", n)
	}

	got, err := c.GetMany(ctx, []string{p + "stale", p + "fresh"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got[p+"stale"]; ok {
		t.Fatal("stale entry survived prune")
	}
	if _, ok := got[p+"fresh"]; !ok {
		t.Fatal("fresh entry was pruned")
	}
}

func TestSQLCoordinateCacheRejectsEmptyKey(t *testing.T) {
	c, _ := newPostgresCache(t)
	if err := c.PutMany(context.Background(), map[string]domain.Coordinate{" ": {RA: 1, Dec: 1}}); err == nil {
		t.Fatal("expected error for empty key")
	}
}
