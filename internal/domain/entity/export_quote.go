package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Incoterms soportados para cotizaciones de exportación.
const (
	IncotermEXW = "EXW"
	IncotermFOB = "FOB"
	IncotermCIF = "CIF"
)

// ValidIncoterm reporta si el incoterm está soportado.
func ValidIncoterm(s string) bool {
	return s == IncotermEXW || s == IncotermFOB || s == IncotermCIF
}

// ExportQuote representa una cotización COMEX. Los totales se calculan al
// crear la cotización (ver domain/comex) y se persisten congelados.
type ExportQuote struct {
	ID             string
	ClientID       string
	Incoterm       string
	Currency       string          // moneda de la cotización, ej. "USD"
	ExchangeRate   decimal.Decimal // moneda local por unidad de Currency
	FreightCost    decimal.Decimal // flete internacional, en Currency
	InsuranceRate  decimal.Decimal // tasa sobre (FOB + flete), ej. 0.011
	FOBTotal       decimal.Decimal
	InsuranceTotal decimal.Decimal
	GrandTotal     decimal.Decimal // total según incoterm
	Status         string          // draft | sent | accepted | rejected
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExportQuoteItem una línea de la cotización, con precio unitario en la
// moneda de la cotización.
type ExportQuoteItem struct {
	ID        string
	QuoteID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
