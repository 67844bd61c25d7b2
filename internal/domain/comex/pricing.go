// Package comex contiene la aritmética de cotizaciones de exportación
// (servicio de dominio puro, sin persistencia).
package comex

import "github.com/shopspring/decimal"

// QuoteLine es una línea de cotización ya valorizada en la moneda de la
// cotización.
type QuoteLine struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals agrupa los totales de una cotización según incoterm.
//
//	FOB       = sum(cantidad * precio unitario)
//	Seguro    = (FOB + Flete) * tasa de seguro
//	CIF       = FOB + Flete + Seguro
//
// Para EXW y FOB el GrandTotal es el FOB (el flete y seguro corren por cuenta
// del comprador); para CIF es el CIF. Todos los montos se redondean a 2
// decimales (half-up, convención comercial).
type Totals struct {
	FOB        decimal.Decimal
	Freight    decimal.Decimal
	Insurance  decimal.Decimal
	CIF        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Compute calcula los totales de la cotización.
func Compute(incoterm string, lines []QuoteLine, freight, insuranceRate decimal.Decimal) Totals {
	fob := decimal.Zero
	for _, l := range lines {
		fob = fob.Add(l.Quantity.Mul(l.UnitPrice))
	}
	fob = fob.Round(2)

	insurance := fob.Add(freight).Mul(insuranceRate).Round(2)
	cif := fob.Add(freight).Add(insurance).Round(2)

	t := Totals{
		FOB:       fob,
		Freight:   freight.Round(2),
		Insurance: insurance,
		CIF:       cif,
	}
	if incoterm == "CIF" {
		t.GrandTotal = cif
	} else {
		t.GrandTotal = fob
	}
	return t
}

// ConvertLocal convierte un monto de la moneda de la cotización a moneda
// local usando el tipo de cambio dado.
func ConvertLocal(amount, exchangeRate decimal.Decimal) decimal.Decimal {
	return amount.Mul(exchangeRate).Round(2)
}
