package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles (tiers) de cliente. El nivel se recalcula a partir del acumulado de
// ventas pagadas: nunca baja automáticamente, solo sube.
const (
	TierRetail      = "retail"
	TierWholesale   = "wholesale"
	TierDistributor = "distributor"
)

// Umbrales de acumulado para subir de nivel.
var (
	tierWholesaleThreshold   = decimal.NewFromInt(500_000)
	tierDistributorThreshold = decimal.NewFromInt(2_000_000)
)

// TierForAccumulated devuelve el nivel que corresponde a un acumulado de
// compras pagadas. current se respeta como piso: un cliente no desciende.
func TierForAccumulated(accumulated decimal.Decimal, current string) string {
	computed := TierRetail
	if accumulated.GreaterThanOrEqual(tierDistributorThreshold) {
		computed = TierDistributor
	} else if accumulated.GreaterThanOrEqual(tierWholesaleThreshold) {
		computed = TierWholesale
	}
	if tierRank(computed) < tierRank(current) {
		return current
	}
	return computed
}

func tierRank(t string) int {
	switch t {
	case TierDistributor:
		return 2
	case TierWholesale:
		return 1
	default:
		return 0
	}
}

// Client representa un cliente de la empresa.
type Client struct {
	ID        string
	Name      string
	TaxID     string // CUIT / NIT / RUT según el país
	Email     string
	Phone     string
	Address   string
	Tier      string // retail | wholesale | distributor
	CreatedAt time.Time
	UpdatedAt time.Time
}
