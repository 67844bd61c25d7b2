package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteLineRequest una línea de cotización COMEX.
type QuoteLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"` // en la moneda de la cotización
}

// CreateQuoteRequest entrada para crear una cotización de exportación.
type CreateQuoteRequest struct {
	ClientID      string             `json:"client_id" validate:"required"`
	Incoterm      string             `json:"incoterm" validate:"required"`
	Currency      string             `json:"currency"`
	ExchangeRate  decimal.Decimal    `json:"exchange_rate"`
	FreightCost   decimal.Decimal    `json:"freight_cost"`
	InsuranceRate decimal.Decimal    `json:"insurance_rate"`
	Notes         string             `json:"notes"`
	Items         []QuoteLineRequest `json:"items" validate:"required,min=1"`
}

// QuoteResponse salida de una cotización con totales congelados.
type QuoteResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	Incoterm       string          `json:"incoterm"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	FreightCost    decimal.Decimal `json:"freight_cost"`
	InsuranceRate  decimal.Decimal `json:"insurance_rate"`
	FOBTotal       decimal.Decimal `json:"fob_total"`
	InsuranceTotal decimal.Decimal `json:"insurance_total"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	LocalTotal     decimal.Decimal `json:"local_total"` // GrandTotal * ExchangeRate
	Status         string          `json:"status"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}

// QuoteListResponse lista paginada de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
