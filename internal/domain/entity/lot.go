package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote de producción de un producto en una bodega.
// CurrentRemaining puede ser fraccionario por deriva de redondeos aguas
// arriba; el asignador de ventas siempre trabaja con floor(CurrentRemaining).
// Invariante: 0 <= CurrentRemaining <= InitialQuantity.
type Lot struct {
	ID               string
	ProductID        string
	WarehouseID      string
	Code             string // etiqueta humana del lote, ej. "L-2025-014"
	InitialQuantity  decimal.Decimal
	CurrentRemaining decimal.Decimal
	ExpiryDate       *time.Time // nil = sin vencimiento; ordena al final
	ProductionCost   decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SoldUnits devuelve las unidades ya vendidas del lote.
func (l *Lot) SoldUnits() decimal.Decimal {
	return l.InitialQuantity.Sub(l.CurrentRemaining)
}
