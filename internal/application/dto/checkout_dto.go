package dto

import "github.com/shopspring/decimal"

// CheckoutItemRequest un renglón del carrito online.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=1"`
}

// BuyerInfo datos de contacto y envío del comprador.
type BuyerInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// CheckoutRequest entrada del checkout: carrito + comprador + costo de envío.
type CheckoutRequest struct {
	Items        []CheckoutItemRequest `json:"items" validate:"required,min=1"`
	Buyer        BuyerInfo             `json:"buyer"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
}

// CheckoutResponse salida del checkout: la venta queda creada como carrito
// abandonado y el comprador es redirigido a la pasarela.
type CheckoutResponse struct {
	SaleID      string `json:"sale_id"`
	RedirectURL string `json:"redirect_url"`
}

// PaymentWebhookRequest notificación de la pasarela sobre una preferencia.
type PaymentWebhookRequest struct {
	ExternalRef string `json:"external_ref" validate:"required"`
	Status      string `json:"status" validate:"required"` // approved | rejected
}
