package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	Barcode        string          `json:"barcode"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Unit           string          `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	Barcode        *string          `json:"barcode"`
	Category       *string          `json:"category"`
	Price          *decimal.Decimal `json:"price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	Unit           *string          `json:"unit"`
	Active         *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Barcode        string          `json:"barcode"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	Unit           string          `json:"unit"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
