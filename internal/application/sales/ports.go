package sales

import (
	"context"

	"github.com/comercia/comercia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cubre la fase de líneas + ajuste de lotes del
// orquestador (y la restauración de stock al eliminar una venta); la cabecera
// se maneja fuera, con borrado compensatorio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		lotRepo repository.LotRepository,
	) error) error
}
