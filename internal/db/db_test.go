package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var mode string
	if err := database.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("read journal mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}

	if err := Healthy(context.Background(), database); err != nil {
		t.Fatalf("Healthy: %v", err)
	}

	database.Close()
	if err := Healthy(context.Background(), database); err == nil {
		t.Fatalf("expected closed database to be unhealthy")
	}
}

func TestOpenMemoryDatabaseSharesSchema(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(`CREATE TABLE t (v INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO t (v) VALUES (1)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
