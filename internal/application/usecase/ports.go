package usecase

import "github.com/comercia/comercia-api/internal/application/dto"

// PriceListPDFGenerator define el puerto de salida para renderizar una lista
// de precios a PDF. La implementación concreta usa Maroto.
type PriceListPDFGenerator interface {
	GeneratePriceListPDF(list *dto.PriceListResponse) ([]byte, error)
}
