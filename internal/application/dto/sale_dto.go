package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del borrador de venta: el vendedor pide N
// unidades de un producto; el asignador decide de qué lotes salen.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"min=0"`
	UnitPrice decimal.Decimal `json:"unit_price"` // cero = usar precio del producto según tier
}

// CreateSaleRequest entrada del orquestador de ventas.
type CreateSaleRequest struct {
	ClientID    string            `json:"client_id"` // vacío = venta de mostrador
	WarehouseID string            `json:"warehouse_id"`
	Type        string            `json:"type"`
	Notes       string            `json:"notes"`
	Channel     string            `json:"channel"`
	TaxRate     decimal.Decimal   `json:"tax_rate"` // ej. 0.21
	Items       []SaleLineRequest `json:"items" validate:"required,min=1"`
}

// UpdateSaleStatusRequest cambio de estado (transición libre).
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SaleItemResponse línea persistida con su lote de origen.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	LotID     string          `json:"lot_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID        string             `json:"id"`
	ClientID  *string            `json:"client_id"`
	Date      time.Time          `json:"date"`
	Type      string             `json:"type"`
	Status    string             `json:"status"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Tax       decimal.Decimal    `json:"tax"`
	Total     decimal.Decimal    `json:"total"`
	Notes     string             `json:"notes"`
	Channel   string             `json:"channel"`
	Items     []SaleItemResponse `json:"items,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
