package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics devuelve facturación y cantidad de ventas pagadas en el rango.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var revenue decimal.Decimal
	var count int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND date >= $2 AND date <= $3`,
		entity.SaleStatusPaid, from, to,
	).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales metrics: %w", err)
	}
	return revenue, count, nil
}

// GetTopProducts ranking de productos por unidades vendidas (ventas pagadas).
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, SUM(si.quantity), SUM(si.quantity * si.unit_price)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.status = $1 AND s.date >= $2 AND s.date <= $3
		GROUP BY p.id, p.name
		ORDER BY SUM(si.quantity) DESC
		LIMIT $4`,
		entity.SaleStatusPaid, from, to, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var tp repository.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.Quantity, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, tp)
	}
	return list, rows.Err()
}

// CountSalesByStatus cuenta ventas por estado (ej. carritos abandonados).
func (r *AnalyticsRepo) CountSalesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales by status: %w", err)
	}
	return count, nil
}

// ListLotsNearExpiry lotes con existencia que vencen dentro de days días.
func (r *AnalyticsRepo) ListLotsNearExpiry(ctx context.Context, days, limit int) ([]*entity.Lot, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+lotColumns+`
		FROM lots
		WHERE current_remaining >= 1
		  AND expiry_date IS NOT NULL
		  AND expiry_date <= now() + ($1 || ' days')::interval
		ORDER BY expiry_date ASC
		LIMIT $2`,
		days, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("lots near expiry: %w", err)
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
