// Package allocation implementa la asignación de cantidades vendidas sobre
// lotes de inventario: consumo voraz en orden de vencimiento más próximo
// (FEFO), con piso de cantidades fraccionarias y descarte de lotes "polvo"
// (menos de 1 unidad usable).
//
// Es un servicio de dominio puro: no toca persistencia ni tiene efectos
// secundarios. El caller obtiene los lotes candidatos, llama Allocate y
// persiste el resultado.
package allocation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
)

// CandidateLot es la vista mínima de un lote que necesita el asignador.
// Remaining puede ser fraccionario por deriva de redondeos aguas arriba.
type CandidateLot struct {
	LotID     string
	Code      string
	Remaining decimal.Decimal
	Expiry    *time.Time
}

// Allocation es una asignación (lote, cantidad) emitida por Allocate.
type Allocation struct {
	LotID    string
	Code     string
	Quantity int64
}

// FromLot construye el candidato a partir de la entidad de dominio.
func FromLot(l *entity.Lot) CandidateLot {
	return CandidateLot{
		LotID:     l.ID,
		Code:      l.Code,
		Remaining: l.CurrentRemaining,
		Expiry:    l.ExpiryDate,
	}
}

// Allocate reparte requested unidades de un producto entre los lotes
// candidatos. productName solo se usa para los mensajes de error.
//
//  1. Normaliza: usable = floor(Remaining); descarta lotes con usable < 1.
//  2. Verifica capacidad: si sum(usable) < requested falla con stock
//     insuficiente reportando el total usable real (no el fraccionario).
//  3. Consume en orden de vencimiento ascendente, sin vencimiento al final,
//     empate resuelto por LotID para que el orden sea determinista.
//  4. Verifica integridad: al terminar el contador restante debe ser cero.
//
// requested == 0 devuelve una lista vacía sin error. La suma de las
// cantidades asignadas es exactamente requested.
func Allocate(productName string, lots []CandidateLot, requested int64) ([]Allocation, error) {
	if requested < 0 {
		return nil, domain.ErrInvalidInput("la cantidad solicitada no puede ser negativa")
	}
	if requested == 0 {
		return []Allocation{}, nil
	}

	type usableLot struct {
		CandidateLot
		usable int64
	}

	// Paso 1: piso y descarte de lotes con menos de 1 unidad usable.
	candidates := make([]usableLot, 0, len(lots))
	var usableTotal int64
	for _, l := range lots {
		usable := l.Remaining.Floor().IntPart()
		if usable < 1 {
			continue
		}
		candidates = append(candidates, usableLot{CandidateLot: l, usable: usable})
		usableTotal += usable
	}

	// Paso 2: capacidad. El disponible reportado es el total usable filtrado.
	if usableTotal < requested {
		return nil, domain.ErrInsufficientStock(productName, requested, usableTotal)
	}

	// Paso 3: orden FEFO. Vencimiento nil ordena al final; empate por LotID.
	sort.SliceStable(candidates, func(i, j int) bool {
		ei, ej := candidates[i].Expiry, candidates[j].Expiry
		switch {
		case ei == nil && ej == nil:
			return candidates[i].LotID < candidates[j].LotID
		case ei == nil:
			return false
		case ej == nil:
			return true
		case ei.Equal(*ej):
			return candidates[i].LotID < candidates[j].LotID
		default:
			return ei.Before(*ej)
		}
	})

	allocations := make([]Allocation, 0, len(candidates))
	remaining := requested
	for _, c := range candidates {
		if remaining == 0 {
			break
		}
		take := c.usable
		if take > remaining {
			take = remaining
		}
		allocations = append(allocations, Allocation{LotID: c.LotID, Code: c.Code, Quantity: take})
		remaining -= take
	}

	// Paso 4: integridad. Inalcanzable si el paso 2 es correcto.
	if remaining != 0 {
		return nil, domain.ErrAllocationIntegrity(productName, remaining)
	}
	return allocations, nil
}
