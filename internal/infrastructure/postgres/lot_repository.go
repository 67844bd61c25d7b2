package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, product_id, warehouse_id, code, initial_quantity, current_remaining, expiry_date, production_cost, created_at, updated_at`

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un nuevo lote (registro de producción).
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.WarehouseID, lot.Code,
		lot.InitialQuantity, lot.CurrentRemaining, lot.ExpiryDate, lot.ProductionCost,
		lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.ProductID, &l.WarehouseID, &l.Code,
		&l.InitialQuantity, &l.CurrentRemaining, &l.ExpiryDate, &l.ProductionCost,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListCandidates devuelve los lotes con existencia de un producto, ordenados
// por vencimiento ascendente (NULL al final) y empate por id.
// Sin FOR UPDATE: la lectura no bloquea la fila entre el chequeo de capacidad
// y la escritura de la venta (comportamiento original del sistema).
func (r *LotRepo) ListCandidates(productID, warehouseID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE product_id = $1 AND current_remaining > 0
		  AND ($2 = '' OR warehouse_id = $2)
		ORDER BY expiry_date ASC NULLS LAST, id ASC`
	return r.queryLots(query, productID, warehouseID)
}

// ListByProduct devuelve todos los lotes de un producto (incluye agotados).
func (r *LotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE product_id = $1
		ORDER BY expiry_date ASC NULLS LAST, id ASC`
	return r.queryLots(query, productID)
}

func (r *LotRepo) queryLots(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ProductID, &l.WarehouseID, &l.Code,
			&l.InitialQuantity, &l.CurrentRemaining, &l.ExpiryDate, &l.ProductionCost,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza cantidad inicial, existencia, vencimiento y costo del lote.
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots
		SET initial_quantity = $2, current_remaining = $3, expiry_date = $4,
		    production_cost = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.InitialQuantity, lot.CurrentRemaining, lot.ExpiryDate,
		lot.ProductionCost, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// AdjustRemaining suma delta a current_remaining (negativo descuenta).
// Sin constraint de no-negatividad, igual que el trigger del sistema original.
func (r *LotRepo) AdjustRemaining(lotID string, delta decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lots SET current_remaining = current_remaining + $2, updated_at = now() WHERE id = $1`,
		lotID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust lot remaining: %w", err)
	}
	return nil
}

// Delete elimina un lote por ID.
func (r *LotRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}
