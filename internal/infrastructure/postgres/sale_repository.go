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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, client_id, date, type, status, subtotal, tax, total, notes, channel, external_ref, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateHeader inserta la cabecera de la venta (fase 1 del orquestador).
func (r *SaleRepo) CreateHeader(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ClientID, sale.Date, sale.Type, sale.Status,
		sale.Subtotal, sale.Tax, sale.Total, sale.Notes, sale.Channel, sale.ExternalRef,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta (fase 2; dentro de la tx del runner).
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, lot_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.LotID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByExternalRef obtiene una venta por la referencia de la pasarela de pagos.
func (r *SaleRepo) GetByExternalRef(ref string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE external_ref = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ref))
}

func (r *SaleRepo) scanOne(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.ClientID, &s.Date, &s.Type, &s.Status,
		&s.Subtotal, &s.Tax, &s.Total, &s.Notes, &s.Channel, &s.ExternalRef,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItems devuelve las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, lot_id, quantity, unit_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.LotID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista ventas, opcionalmente filtradas por estado, más recientes primero.
func (r *SaleRepo) List(status string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE ($1 = '' OR status = $1)
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Date, &s.Type, &s.Status,
			&s.Subtotal, &s.Tax, &s.Total, &s.Notes, &s.Channel, &s.ExternalRef,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de la venta. Transición libre: no se
// valida el estado anterior.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// Delete elimina la venta y sus líneas.
func (r *SaleRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// SumPaidByClient devuelve el acumulado de ventas pagadas del cliente.
func (r *SaleRepo) SumPaidByClient(clientID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(total), 0) FROM sales WHERE client_id = $1 AND status = $2`,
		clientID, entity.SaleStatusPaid,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum paid sales: %w", err)
	}
	return total, nil
}
