package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/allocation"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// Create orquesta la creación de una venta:
//
//  1. Por cada línea del borrador obtiene los lotes candidatos y ejecuta el
//     asignador. Si CUALQUIER línea falla se aborta sin escribir nada.
//  2. Inserta la cabecera (fase 1).
//  3. Inserta todas las líneas y descuenta los lotes en una transacción
//     (fase 2). Si la fase 2 falla, borra la cabecera recién creada para no
//     dejar una venta huérfana sin líneas (acción compensatoria).
//
// Los fallos de persistencia llegan al caller con el mensaje original; el
// caller los muestra y permite reintentar el borrador completo.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput("la venta necesita al menos una línea")
	}
	saleType := in.Type
	if saleType == "" {
		saleType = entity.SaleTypeSale
	}
	if saleType != entity.SaleTypeSale && saleType != entity.SaleTypeConsignment {
		return nil, domain.ErrInvalidInput("tipo de venta inválido: " + saleType)
	}
	channel := in.Channel
	if channel == "" {
		channel = entity.ChannelStore
	}

	var client *entity.Client
	var clientID *string
	if in.ClientID != "" {
		c, err := uc.clientRepo.GetByID(in.ClientID)
		if err != nil {
			return nil, domain.ErrPersistence(err)
		}
		if c == nil {
			return nil, domain.ErrNotFound("cliente")
		}
		client = c
		clientID = &c.ID
	}

	// Fase 0: asignación de lotes para TODAS las líneas antes de escribir.
	items, subtotal, err := uc.allocateLines(in, client)
	if err != nil {
		return nil, err
	}

	tax := subtotal.Mul(in.TaxRate).Round(2)
	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Date:      now,
		Type:      saleType,
		Status:    entity.SaleStatusPending,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		Notes:     in.Notes,
		Channel:   channel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range items {
		items[i].SaleID = sale.ID
	}

	if err := uc.persistSale(ctx, sale, items); err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// allocateLines ejecuta el asignador para cada línea del borrador y devuelve
// las líneas resueltas (una por par lote/cantidad) con el subtotal.
func (uc *UseCase) allocateLines(in dto.CreateSaleRequest, client *entity.Client) ([]*entity.SaleItem, decimal.Decimal, error) {
	var items []*entity.SaleItem
	subtotal := decimal.Zero

	for _, line := range in.Items {
		if line.ProductID == "" {
			return nil, decimal.Zero, domain.ErrInvalidInput("línea sin producto")
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, decimal.Zero, domain.ErrPersistence(err)
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrNotFound("producto " + line.ProductID)
		}

		lots, err := uc.lotRepo.ListCandidates(line.ProductID, in.WarehouseID)
		if err != nil {
			return nil, decimal.Zero, domain.ErrPersistence(err)
		}
		candidates := make([]allocation.CandidateLot, 0, len(lots))
		for _, l := range lots {
			candidates = append(candidates, allocation.FromLot(l))
		}

		allocs, err := allocation.Allocate(product.Name, candidates, line.Quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}

		unitPrice := resolveUnitPrice(line.UnitPrice, product, client)
		for _, a := range allocs {
			qty := decimal.NewFromInt(a.Quantity)
			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				LotID:     a.LotID,
				Quantity:  qty,
				UnitPrice: unitPrice,
			})
			subtotal = subtotal.Add(qty.Mul(unitPrice))
		}
	}
	return items, subtotal.Round(2), nil
}

// persistSale ejecuta las dos fases de escritura con compensación.
func (uc *UseCase) persistSale(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem) error {
	// Fase 1: cabecera.
	if err := uc.saleRepo.CreateHeader(sale); err != nil {
		return domain.ErrPersistence(err)
	}

	// Fase 2: líneas + descuento de lotes, atómico.
	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, lotRepo repository.LotRepository) error {
		for _, it := range items {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
			if err := lotRepo.AdjustRemaining(it.LotID, it.Quantity.Neg()); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	// Compensación: borrar la cabecera huérfana. Se registra primero la causa
	// original porque si el borrado también falla, es SU error el que viaja al
	// caller (ver DESIGN.md).
	uc.log.Error().Err(err).Str("sale_id", sale.ID).
		Msg("fallo al insertar líneas de venta; borrando cabecera huérfana")
	if compErr := uc.saleRepo.Delete(sale.ID); compErr != nil {
		uc.log.Error().Err(compErr).Str("sale_id", sale.ID).
			Msg("falló el borrado compensatorio de la cabecera")
		return domain.ErrPersistence(compErr)
	}
	return domain.ErrPersistence(err)
}

// resolveUnitPrice aplica el precio pedido o, si es cero, el del producto
// según el tier del cliente (mayorista/distribuidor compran a mayorista).
func resolveUnitPrice(requested decimal.Decimal, product *entity.Product, client *entity.Client) decimal.Decimal {
	if requested.GreaterThan(decimal.Zero) {
		return requested
	}
	if client != nil && client.Tier != entity.TierRetail {
		return product.WholesalePrice
	}
	return product.Price
}
