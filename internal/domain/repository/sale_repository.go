package repository

import (
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
//
// CreateHeader y CreateItem son fases separadas a propósito: el orquestador
// inserta primero la cabecera y luego las líneas, con borrado compensatorio
// de la cabecera si la segunda fase falla.
type SaleRepository interface {
	CreateHeader(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetByExternalRef(ref string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	List(status string, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id, status string) error
	// Delete elimina cabecera y líneas. La restauración de stock la coordina
	// el caso de uso antes de llamar aquí.
	Delete(id string) error
	// SumPaidByClient devuelve el acumulado de ventas pagadas de un cliente
	// (insumo del recálculo de nivel).
	SumPaidByClient(clientID string) (decimal.Decimal, error)
}
