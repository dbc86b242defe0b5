package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (usable con pool o tx).
// Create escribe cabecera y entradas; dentro del motor de inventario siempre se
// ejecuta con el Querier de la transacción del lote.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste el movimiento con sus entradas.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	ctx := context.Background()
	query := `
		INSERT INTO stock_movements (id, type, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Type, movement.Description, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	entryQuery := `
		INSERT INTO stock_movement_entries (id, movement_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, e := range movement.Entries {
		if _, err := r.q.Exec(ctx, entryQuery, e.ID, movement.ID, e.ProductID, e.Quantity); err != nil {
			return fmt.Errorf("insert stock movement entry: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el movimiento con sus entradas.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	ctx := context.Background()
	query := `
		SELECT id, type, description, created_at, created_by
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Type, &m.Description, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	if m.Entries, err = r.loadEntries(ctx, id); err != nil {
		return nil, err
	}
	return &m, nil
}

// List lista movimientos con rango de fechas opcional y paginación.
func (r *StockMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	ctx := context.Background()
	query := `
		SELECT id, type, description, created_at, created_by
		FROM stock_movements
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.Type, &m.Description, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		if m.Entries, err = r.loadEntries(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete elimina el movimiento y sus entradas. No revierte el stock.
func (r *StockMovementRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movement_entries WHERE movement_id = $1`, id); err != nil {
		return fmt.Errorf("delete stock movement entries: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) loadEntries(ctx context.Context, movementID string) ([]entity.StockMovementEntry, error) {
	query := `
		SELECT id, movement_id, product_id, quantity
		FROM stock_movement_entries WHERE movement_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("load stock movement entries: %w", err)
	}
	defer rows.Close()
	var entries []entity.StockMovementEntry
	for rows.Next() {
		var e entity.StockMovementEntry
		if err := rows.Scan(&e.ID, &e.MovementID, &e.ProductID, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock movement entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
