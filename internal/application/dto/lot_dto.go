package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterLotRequest entrada para registrar producción (alta de lote).
type RegisterLotRequest struct {
	ProductID      string          `json:"product_id" validate:"required"`
	WarehouseID    string          `json:"warehouse_id" validate:"required"`
	Code           string          `json:"code" validate:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpiryDate     *time.Time      `json:"expiry_date"`
	ProductionCost decimal.Decimal `json:"production_cost"`
}

// UpdateLotRequest entrada para editar un lote. La cantidad inicial no puede
// quedar por debajo de las unidades ya vendidas.
type UpdateLotRequest struct {
	InitialQuantity *decimal.Decimal `json:"initial_quantity"`
	ExpiryDate      *time.Time       `json:"expiry_date"`
	ClearExpiry     bool             `json:"clear_expiry"`
	ProductionCost  *decimal.Decimal `json:"production_cost"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	WarehouseID      string          `json:"warehouse_id"`
	Code             string          `json:"code"`
	InitialQuantity  decimal.Decimal `json:"initial_quantity"`
	CurrentRemaining decimal.Decimal `json:"current_remaining"`
	ExpiryDate       *time.Time      `json:"expiry_date"`
	ProductionCost   decimal.Decimal `json:"production_cost"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// LotListResponse lista de lotes de un producto.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
}
