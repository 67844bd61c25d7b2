package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta.
const (
	SaleTypeSale        = "sale"
	SaleTypeConsignment = "consignment"
)

// Estados de una venta. Las transiciones son libres: cualquier estado puede
// seguir a cualquier otro (no hay máquina de estados).
const (
	SaleStatusPending       = "pending"
	SaleStatusPaid          = "paid"
	SaleStatusShipped       = "shipped"
	SaleStatusCancelled     = "cancelled"
	SaleStatusAbandonedCart = "abandoned_cart"
)

// Canales de venta.
const (
	ChannelStore  = "store"
	ChannelOnline = "online"
	ChannelComex  = "comex"
)

// ValidSaleStatus reporta si s pertenece al conjunto fijo de estados.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusPending, SaleStatusPaid, SaleStatusShipped,
		SaleStatusCancelled, SaleStatusAbandonedCart:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta. La eliminación de una venta
// restaura el stock de los lotes de sus líneas.
type Sale struct {
	ID          string
	ClientID    *string // nil = venta de mostrador sin cliente
	Date        time.Time
	Type        string // sale | consignment
	Status      string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Notes       string
	Channel     string // store | online | comex
	ExternalRef string // referencia de la pasarela de pagos (checkout online)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleItem representa una línea de venta: cantidad tomada de UN lote concreto
// al precio unitario vigente al momento de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	LotID     string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
