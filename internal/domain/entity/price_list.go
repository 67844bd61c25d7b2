package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceList representa una lista de precios por nivel de cliente, pensada
// para renderizar a PDF y compartir con clientes.
type PriceList struct {
	ID        string
	Name      string
	Tier      string // retail | wholesale | distributor
	Currency  string // "ARS", "USD", "COP"...
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceListItem representa el precio de un producto dentro de una lista.
type PriceListItem struct {
	ID          string
	PriceListID string
	ProductID   string
	ProductName string // desnormalizado para el render PDF
	Unit        string
	Price       decimal.Decimal
}
