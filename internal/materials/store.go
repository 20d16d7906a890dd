package materials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.New("material not found")

// Material is a catalog entry with the suggested cost of a 1 kg spool.
type Material struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SpoolCost decimal.Decimal `json:"spool_cost"`
	Notes     string          `json:"notes"`
	Active    bool            `json:"active"`
}

// Store reads and updates the material catalog.
type Store struct {
	db *sql.DB
}

// NewStore returns a catalog store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns catalog entries in display order. Inactive entries are
// included only when includeInactive is set.
func (s *Store) List(ctx context.Context, includeInactive bool) ([]Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, spool_cost, COALESCE(notes, ''), active
		FROM materials
		WHERE (? OR active)
		ORDER BY sort_order, id
	`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	items := make([]Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return items, nil
}

// Get returns the catalog entry with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Material, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, spool_cost, COALESCE(notes, ''), active
		FROM materials
		WHERE id = ?
	`, id)

	m, err := scanMaterial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, ErrNotFound
	}
	return m, err
}

// Update stores a new suggested spool cost, notes and active flag for id.
func (s *Store) Update(ctx context.Context, id int64, spoolCost decimal.Decimal, notes string, active bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE materials
		SET
			spool_cost = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, spoolCost.InexactFloat64(), notes, active, id)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row scanner) (Material, error) {
	var (
		m    Material
		cost float64
	)
	if err := row.Scan(&m.ID, &m.Name, &cost, &m.Notes, &m.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Material{}, err
		}
		return Material{}, fmt.Errorf("scan material: %w", err)
	}
	m.SpoolCost = decimal.NewFromFloat(cost)
	return m, nil
}
