package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printprofit/internal/materials"
)

// suggestedSpoolCosts holds the initial catalog price of a 1 kg spool.
var suggestedSpoolCosts = map[string]string{
	"PLA":                "1200",
	"PETG":               "1400",
	"ABS":                "1300",
	"ASA":                "1800",
	"TPU (Flexible)":     "2200",
	"PC (Polycarbonate)": "2800",
	"Nylon":              "3000",
	"PVA (Support)":      "3500",
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run makes sure every selectable material has a catalog row. Existing rows
// are left untouched so edited prices survive restarts.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for i, name := range materials.Names {
		if name == materials.Other {
			continue
		}
		if err := ensureMaterial(ctx, tx, name, i, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(ctx context.Context, tx *sql.Tx, name string, order int, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, name).Scan(&exists); err != nil {
		return fmt.Errorf("check material %q existence: %w", name, err)
	}
	if exists {
		return nil
	}

	cost := decimal.Zero
	if raw, ok := suggestedSpoolCosts[name]; ok {
		cost = decimal.RequireFromString(raw)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO materials (name, spool_cost, notes, sort_order, active)
		VALUES (?, ?, ?, ?, ?)
	`, name, cost.InexactFloat64(), "", order, true); err != nil {
		return fmt.Errorf("insert material %q: %w", name, err)
	}
	stats.Inserts++
	return nil
}
