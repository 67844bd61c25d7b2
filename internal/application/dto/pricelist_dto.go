package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceListItemRequest fila de la lista: producto y precio fijado.
// Precio cero = tomar el precio del producto según el tier de la lista.
type PriceListItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

// CreatePriceListRequest entrada para crear una lista de precios.
type CreatePriceListRequest struct {
	Name     string                 `json:"name" validate:"required"`
	Tier     string                 `json:"tier"`
	Currency string                 `json:"currency"`
	Notes    string                 `json:"notes"`
	Items    []PriceListItemRequest `json:"items" validate:"required,min=1"`
}

// PriceListItemResponse fila de la lista en respuestas.
type PriceListItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
}

// PriceListResponse salida de una lista de precios.
type PriceListResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Tier      string                  `json:"tier"`
	Currency  string                  `json:"currency"`
	Notes     string                  `json:"notes"`
	Items     []PriceListItemResponse `json:"items,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// PriceListListResponse lista paginada de listas de precios.
type PriceListListResponse struct {
	Items []PriceListResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
