package comex_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercia/comercia-api/internal/domain/comex"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Vector de referencia calculado a mano:
//
//	FOB    = 100*12.50 + 40*8.00 = 1570.00
//	Seguro = (1570 + 230) * 0.011 = 19.80
//	CIF    = 1570 + 230 + 19.80   = 1819.80
func TestCompute_VectorCIF(t *testing.T) {
	lines := []comex.QuoteLine{
		{Quantity: dec("100"), UnitPrice: dec("12.50")},
		{Quantity: dec("40"), UnitPrice: dec("8.00")},
	}

	totals := comex.Compute("CIF", lines, dec("230"), dec("0.011"))

	assert.True(t, totals.FOB.Equal(dec("1570.00")), "FOB esperado 1570.00, obtuvo %s", totals.FOB)
	assert.True(t, totals.Insurance.Equal(dec("19.80")), "seguro esperado 19.80, obtuvo %s", totals.Insurance)
	assert.True(t, totals.CIF.Equal(dec("1819.80")), "CIF esperado 1819.80, obtuvo %s", totals.CIF)
	assert.True(t, totals.GrandTotal.Equal(totals.CIF), "para CIF el total es el CIF")
}

func TestCompute_FOBNoIncluyeFleteNiSeguro(t *testing.T) {
	lines := []comex.QuoteLine{{Quantity: dec("10"), UnitPrice: dec("100")}}

	totals := comex.Compute("FOB", lines, dec("500"), dec("0.02"))

	require.True(t, totals.GrandTotal.Equal(dec("1000.00")),
		"para FOB el total es solo la mercadería: %s", totals.GrandTotal)
	// El CIF igual se calcula y queda disponible como referencia
	assert.True(t, totals.CIF.Equal(dec("1530.00")))
}

func TestCompute_SinLineas(t *testing.T) {
	totals := comex.Compute("EXW", nil, decimal.Zero, decimal.Zero)
	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.FOB.IsZero())
}

func TestConvertLocal(t *testing.T) {
	local := comex.ConvertLocal(dec("1819.80"), dec("985.5"))
	assert.True(t, local.Equal(dec("1793412.90")), "conversión esperada 1793412.90, obtuvo %s", local)
}
