package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock real vive en los
// lotes (Lot); el producto solo define precios y datos comerciales.
type Product struct {
	ID             string
	Name           string
	Description    string
	Barcode        string // código EAN/UPC escaneado en tienda; puede ser vacío
	Category       string
	Price          decimal.Decimal // precio minorista
	WholesalePrice decimal.Decimal // precio mayorista (listas de precios)
	Unit           string          // unidad de venta: "un", "kg", "caja"
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
