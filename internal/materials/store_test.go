package materials_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printprofit/internal/db"
	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/migrations"
	"github.com/Simplici0/printprofit/internal/seed"
)

func newCatalog(t *testing.T) *materials.Store {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	if err := migrations.Up(ctx, database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(ctx, database); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	return materials.NewStore(database)
}

func TestStoreListFollowsDisplayOrder(t *testing.T) {
	store := newCatalog(t)

	items, err := store.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != len(materials.Names)-1 {
		t.Fatalf("expected %d materials, got %d", len(materials.Names)-1, len(items))
	}
	for i, item := range items {
		if item.Name != materials.Names[i] {
			t.Fatalf("item %d = %q, want %q", i, item.Name, materials.Names[i])
		}
	}
	if !items[0].SpoolCost.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected PLA spool cost 1200, got %s", items[0].SpoolCost)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := newCatalog(t)
	ctx := context.Background()

	items, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	target := items[1]

	if err := store.Update(ctx, target.ID, decimal.RequireFromString("1499.5"), "sale price", false); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := store.Get(ctx, target.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !got.SpoolCost.Equal(decimal.RequireFromString("1499.5")) || got.Notes != "sale price" || got.Active {
		t.Fatalf("unexpected material after update: %+v", got)
	}

	active, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != len(items)-1 {
		t.Fatalf("expected inactive material to be hidden, got %d items", len(active))
	}

	all, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != len(items) {
		t.Fatalf("expected %d items including inactive, got %d", len(items), len(all))
	}
}

func TestStoreMissingMaterial(t *testing.T) {
	store := newCatalog(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, 404); !errors.Is(err, materials.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Get, got %v", err)
	}
	if err := store.Update(ctx, 404, decimal.Zero, "", true); !errors.Is(err, materials.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Update, got %v", err)
	}
}
