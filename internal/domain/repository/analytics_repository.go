package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/domain/entity"
)

// TopProduct es una fila del ranking de productos más vendidos.
type TopProduct struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	Revenue   decimal.Decimal
}

// AnalyticsRepository agrupa las consultas read-only del dashboard.
// Lleva context.Context porque el caso de uso las lanza en paralelo.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve facturación y cantidad de ventas pagadas en el rango.
	GetSalesMetrics(ctx context.Context, from, to time.Time) (revenue decimal.Decimal, count int64, err error)
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	CountSalesByStatus(ctx context.Context, status string) (int64, error)
	// ListLotsNearExpiry devuelve lotes con existencia que vencen dentro de
	// days días, los más próximos primero.
	ListLotsNearExpiry(ctx context.Context, days, limit int) ([]*entity.Lot, error)
}
