package repository

import (
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes de inventario.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	// ListCandidates devuelve los lotes con existencia de un producto,
	// opcionalmente filtrados por bodega (warehouseID vacío = todas),
	// ordenados por vencimiento ascendente con NULL al final y empate por id.
	// Es la lectura que alimenta al asignador de ventas.
	ListCandidates(productID, warehouseID string) ([]*entity.Lot, error)
	ListByProduct(productID string) ([]*entity.Lot, error)
	// Update modifica cantidad inicial, vencimiento y costo. El caso de uso
	// valida antes que la cantidad inicial no quede por debajo de lo vendido.
	Update(lot *entity.Lot) error
	// AdjustRemaining suma delta (negativo descuenta) a current_remaining.
	// Sin constraint de no-negatividad: replica el trigger original.
	AdjustRemaining(lotID string, delta decimal.Decimal) error
	Delete(id string) error
}
