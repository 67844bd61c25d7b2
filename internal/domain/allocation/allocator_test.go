package allocation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/allocation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func lot(id string, remaining float64, expiry *time.Time) allocation.CandidateLot {
	return allocation.CandidateLot{
		LotID:     id,
		Code:      "L-" + id,
		Remaining: decimal.NewFromFloat(remaining),
		Expiry:    expiry,
	}
}

func totalAllocated(allocs []allocation.Allocation) int64 {
	var sum int64
	for _, a := range allocs {
		sum += a.Quantity
	}
	return sum
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos felices
// ──────────────────────────────────────────────────────────────────────────────

// Ejemplo de referencia: lotes A(5, vence 2025-01-01) y B(3, vence 2025-06-01),
// pedido de 6 → [(A,5),(B,1)].
func TestAllocate_EjemploReferencia(t *testing.T) {
	lots := []allocation.CandidateLot{
		{LotID: "A", Remaining: decimal.NewFromInt(5), Expiry: datePtr(2025, 1, 1)},
		{LotID: "B", Remaining: decimal.NewFromInt(3), Expiry: datePtr(2025, 6, 1)},
	}

	allocs, err := allocation.Allocate("Yerba 1kg", lots, 6)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, "A", allocs[0].LotID, "primero el lote que vence antes")
	assert.EqualValues(t, 5, allocs[0].Quantity)
	assert.Equal(t, "B", allocs[1].LotID)
	assert.EqualValues(t, 1, allocs[1].Quantity)
}

func TestAllocate_PedidoIgualAlTotalUsable(t *testing.T) {
	// 5 + 3 = 8 usables; pedir exactamente 8 debe consumir el último lote
	// completo y dejar el contador en cero en la última iteración.
	lots := []allocation.CandidateLot{
		lot("A", 5, datePtr(2025, 1, 1)),
		lot("B", 3, datePtr(2025, 6, 1)),
	}

	allocs, err := allocation.Allocate("Harina", lots, 8)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.EqualValues(t, 8, totalAllocated(allocs), "debe asignar exactamente lo pedido")
	assert.EqualValues(t, 3, allocs[1].Quantity, "el último lote se consume completo")
}

func TestAllocate_UnSoloLoteSuficiente(t *testing.T) {
	lots := []allocation.CandidateLot{
		lot("A", 100, nil),
		lot("B", 50, datePtr(2025, 3, 1)),
	}

	allocs, err := allocation.Allocate("Azúcar", lots, 20)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "B", allocs[0].LotID, "el lote con vencimiento va antes que el que no vence")
	assert.EqualValues(t, 20, allocs[0].Quantity)
}

func TestAllocate_PisoDeFraccionarios(t *testing.T) {
	// 5.9 usable=5 y 3.2 usable=3; pedir 8 debe funcionar tomando los pisos.
	lots := []allocation.CandidateLot{
		lot("A", 5.9, datePtr(2025, 1, 1)),
		lot("B", 3.2, datePtr(2025, 6, 1)),
	}

	allocs, err := allocation.Allocate("Café", lots, 8)
	require.NoError(t, err)
	assert.EqualValues(t, 8, totalAllocated(allocs))
	assert.EqualValues(t, 5, allocs[0].Quantity, "nunca se asigna por encima del piso del lote")
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos degenerados y de borde
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_PedidoCero(t *testing.T) {
	lots := []allocation.CandidateLot{lot("A", 5, nil)}

	allocs, err := allocation.Allocate("Té", lots, 0)
	require.NoError(t, err, "pedido 0 es degenerado, no un error")
	assert.Empty(t, allocs)
}

func TestAllocate_PedidoNegativo(t *testing.T) {
	_, err := allocation.Allocate("Té", nil, -1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestAllocate_SinLotesCandidatos(t *testing.T) {
	// Debe fallar la verificación de capacidad, no reventar por otro lado.
	_, err := allocation.Allocate("Fideos", []allocation.CandidateLot{}, 3)
	require.Error(t, err)
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.KindInsufficientStock, de.Kind)
	assert.EqualValues(t, 3, de.Requested)
	assert.EqualValues(t, 0, de.Available)
}

func TestAllocate_LotePolvoNuncaSeAsigna(t *testing.T) {
	// Un lote con 0.9 restante queda totalmente excluido, no se redondea a 1.
	lots := []allocation.CandidateLot{lot("A", 0.9, datePtr(2025, 1, 1))}

	_, err := allocation.Allocate("Aceite", lots, 1)
	require.Error(t, err)
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.Equal(t, domain.KindInsufficientStock, de.Kind)
	assert.EqualValues(t, 1, de.Requested)
	assert.EqualValues(t, 0, de.Available, "el disponible reportado es el usable filtrado, no 0.9")
}

func TestAllocate_PolvoExcluidoDelTotalReportado(t *testing.T) {
	// 2.7 → usable 2; 0.5 → excluido. Pedir 4 reporta disponible=2.
	lots := []allocation.CandidateLot{
		lot("A", 2.7, datePtr(2025, 1, 1)),
		lot("B", 0.5, datePtr(2025, 2, 1)),
	}

	_, err := allocation.Allocate("Vino", lots, 4)
	de := domain.AsError(err)
	require.NotNil(t, de)
	assert.EqualValues(t, 2, de.Available,
		"la suma cruda (3.2) jamás debe aparecer: solo el total usable con piso")
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo y pureza
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_EmpateDeVencimientoEsDeterminista(t *testing.T) {
	exp := datePtr(2025, 5, 1)
	lots := []allocation.CandidateLot{
		lot("B", 4, exp),
		lot("A", 4, exp),
	}

	first, err := allocation.Allocate("Galletas", lots, 6)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := allocation.Allocate("Galletas", lots, 6)
		require.NoError(t, err)
		assert.Equal(t, first, again, "el mismo input siempre produce el mismo orden de asignación")
	}
	assert.Equal(t, "A", first[0].LotID, "empate de vencimiento se resuelve por ID de lote")
}

func TestAllocate_NoMutaElSliceDeEntrada(t *testing.T) {
	lots := []allocation.CandidateLot{
		lot("C", 2, datePtr(2026, 1, 1)),
		lot("A", 2, datePtr(2025, 1, 1)),
		lot("B", 2, nil),
	}
	_, err := allocation.Allocate("Miel", lots, 5)
	require.NoError(t, err)

	assert.Equal(t, "C", lots[0].LotID, "Allocate es puro: no reordena la entrada")
	assert.Equal(t, "A", lots[1].LotID)
	assert.Equal(t, "B", lots[2].LotID)
}

func TestAllocate_VencimientoNilOrdenaAlFinal(t *testing.T) {
	lots := []allocation.CandidateLot{
		lot("SIN-VENC", 10, nil),
		lot("VENCE", 2, datePtr(2025, 1, 1)),
	}

	allocs, err := allocation.Allocate("Arroz", lots, 5)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, "VENCE", allocs[0].LotID)
	assert.EqualValues(t, 2, allocs[0].Quantity)
	assert.Equal(t, "SIN-VENC", allocs[1].LotID)
	assert.EqualValues(t, 3, allocs[1].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad: suficiencia ⇒ suma exacta y respeto de pisos por lote
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_PropiedadSumaExactaYPisos(t *testing.T) {
	cases := []struct {
		name      string
		lots      []allocation.CandidateLot
		requested int64
	}{
		{"un lote justo", []allocation.CandidateLot{lot("A", 7, nil)}, 7},
		{"varios lotes", []allocation.CandidateLot{
			lot("A", 3.9, datePtr(2025, 1, 1)),
			lot("B", 5.1, datePtr(2025, 2, 1)),
			lot("C", 2, nil),
		}, 9},
		{"con polvo en el medio", []allocation.CandidateLot{
			lot("A", 0.2, datePtr(2025, 1, 1)),
			lot("B", 6, datePtr(2025, 2, 1)),
			lot("C", 0.99, datePtr(2025, 3, 1)),
			lot("D", 4, nil),
		}, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allocs, err := allocation.Allocate("p", tc.lots, tc.requested)
			require.NoError(t, err)
			assert.EqualValues(t, tc.requested, totalAllocated(allocs),
				"la suma de asignaciones debe ser exactamente lo pedido")

			floors := make(map[string]int64, len(tc.lots))
			for _, l := range tc.lots {
				floors[l.LotID] = l.Remaining.Floor().IntPart()
			}
			for _, a := range allocs {
				assert.LessOrEqual(t, a.Quantity, floors[a.LotID],
					"ninguna asignación supera el piso del lote %s", a.LotID)
				assert.GreaterOrEqual(t, a.Quantity, int64(1),
					"no se emiten asignaciones de cero unidades")
			}
		})
	}
}
