package checkout

import (
	"context"

	"github.com/shopspring/decimal"
)

// PreferenceItem un renglón del carrito tal como se publica a la pasarela.
type PreferenceItem struct {
	Title     string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// PreferenceBuyer datos del comprador que viajan a la pasarela.
type PreferenceBuyer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	ZipCode string
}

// PreferenceCreator define el puerto de salida hacia la pasarela de pagos.
// externalRef identifica la venta local; la pasarela lo devuelve en el
// webhook para cerrar el círculo.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, externalRef string, items []PreferenceItem, buyer PreferenceBuyer, shipping decimal.Decimal) (redirectURL string, err error)
}
