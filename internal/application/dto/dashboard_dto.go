package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO fila del ranking de productos más vendidos.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ExpiringLotDTO lote próximo a vencer en el widget de alertas.
type ExpiringLotDTO struct {
	LotID     string          `json:"lot_id"`
	Code      string          `json:"code"`
	ProductID string          `json:"product_id"`
	Remaining decimal.Decimal `json:"remaining"`
	ExpiryDate time.Time      `json:"expiry_date"`
}

// DashboardSummaryDTO resumen financiero del día y del mes en curso.
type DashboardSummaryDTO struct {
	TodayRevenue   decimal.Decimal  `json:"today_revenue"`
	TodaySales     int64            `json:"today_sales"`
	MonthRevenue   decimal.Decimal  `json:"month_revenue"`
	MonthSales     int64            `json:"month_sales"`
	TopProducts    []TopProductDTO  `json:"top_products"`
	ExpiringLots   []ExpiringLotDTO `json:"expiring_lots"`
	AbandonedCarts int64            `json:"abandoned_carts"`
}
