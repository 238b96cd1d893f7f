package repositories

import (
	"context"
	"os"
	"path/filepath"
	"ps1-lightcurve-service/internal/platform/db"
	"testing"
)

func TestSeedAndListTargets(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := InitSchema(conn, DriverSqlite); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seed := filepath.Join(t.TempDir(), "targets.json")
	data := `[{"name":" KQ UMa ","note":"cataclysmic variable"},{"name":"M31"}]`
	if err := os.WriteFile(seed, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := SeedFromJSON(conn, DriverSqlite, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Reseeding is an upsert.
	if err := SeedFromJSON(conn, DriverSqlite, seed); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	targets, err := NewSQLTargetRepository(conn).ListTargets(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].Name != "KQ UMa" || targets[0].Note != "cataclysmic variable" {
		t.Fatalf("first target = %+v", targets[0])
	}
	if targets[1].Name != "M31" {
		t.Fatalf("second target = %+v", targets[1])
	}
}

func TestSeedTargetsRejectsEmptyName(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := InitSchema(conn, DriverSqlite); err != nil {
		t.Fatal(err)
	}

	if err := SeedTargets(conn, DriverSqlite, []TargetSeed{{Name: "  "}}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestInitSchemaUnknownDriver(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := InitSchema(conn, "oracle"); err == nil {
		t.Fatal("expected error")
	}
}
