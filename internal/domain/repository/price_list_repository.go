package repository

import "github.com/comercia/comercia-api/internal/domain/entity"

// PriceListRepository define el puerto de persistencia para listas de precios.
type PriceListRepository interface {
	Create(list *entity.PriceList) error
	CreateItem(item *entity.PriceListItem) error
	GetByID(id string) (*entity.PriceList, error)
	GetItems(priceListID string) ([]*entity.PriceListItem, error)
	List(limit, offset int) ([]*entity.PriceList, error)
	Delete(id string) error
}
