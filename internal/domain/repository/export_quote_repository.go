package repository

import "github.com/comercia/comercia-api/internal/domain/entity"

// ExportQuoteRepository define el puerto de persistencia para cotizaciones COMEX.
type ExportQuoteRepository interface {
	Create(quote *entity.ExportQuote) error
	CreateItem(item *entity.ExportQuoteItem) error
	GetByID(id string) (*entity.ExportQuote, error)
	GetItems(quoteID string) ([]*entity.ExportQuoteItem, error)
	List(limit, offset int) ([]*entity.ExportQuote, error)
	UpdateStatus(id, status string) error
}
