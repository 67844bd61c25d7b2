package sales

import (
	"context"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
	"github.com/comercia/comercia-api/pkg/logger"
)

// UseCase coordina el ciclo de vida completo de una venta: creación con
// asignación de lotes, cambios de estado con recálculo de nivel del cliente
// y eliminación con restauración de stock.
type UseCase struct {
	saleRepo    repository.SaleRepository
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	txRunner    TxRunner
	log         *logger.Logger
}

func NewUseCase(
	saleRepo repository.SaleRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		saleRepo:    saleRepo,
		lotRepo:     lotRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		txRunner:    txRunner,
		log:         log,
	}
}

// GetByID devuelve una venta con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound("venta")
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toSaleResponse(sale, items), nil
}

// List devuelve ventas paginadas, opcionalmente filtradas por estado.
func (uc *UseCase) List(status string, limit, offset int) (*dto.SaleListResponse, error) {
	if status != "" && !entity.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput("estado de venta inválido: " + status)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	sales, err := uc.saleRepo.List(status, limit, offset)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range sales {
		out.Items = append(out.Items, *toSaleResponse(s, nil))
	}
	return out, nil
}

// UpdateStatus aplica un cambio de estado. Las transiciones son libres. Si el
// nuevo estado es "paid" y la venta tiene cliente, se recalcula su nivel con
// el acumulado de ventas pagadas (el nivel nunca baja).
func (uc *UseCase) UpdateStatus(id, status string) (*dto.SaleResponse, error) {
	if !entity.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput("estado de venta inválido: " + status)
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound("venta")
	}

	if err := uc.saleRepo.UpdateStatus(id, status); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	sale.Status = status

	if status == entity.SaleStatusPaid && sale.ClientID != nil {
		if err := uc.recomputeClientTier(*sale.ClientID); err != nil {
			// El cambio de estado ya quedó persistido; el recálculo de nivel
			// es secundario y no debe revertirlo.
			uc.log.Warn().Err(err).Str("client_id", *sale.ClientID).
				Msg("no se pudo recalcular el nivel del cliente")
		}
	}
	return toSaleResponse(sale, nil), nil
}

func (uc *UseCase) recomputeClientTier(clientID string) error {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound("cliente")
	}
	accumulated, err := uc.saleRepo.SumPaidByClient(clientID)
	if err != nil {
		return err
	}
	tier := entity.TierForAccumulated(accumulated, client.Tier)
	if tier == client.Tier {
		return nil
	}
	uc.log.Info().Str("client_id", clientID).Str("tier", tier).
		Msg("cliente sube de nivel")
	return uc.clientRepo.UpdateTier(clientID, tier)
}

// Delete elimina una venta restaurando primero el stock de los lotes de sus
// líneas, todo dentro de una transacción.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	if sale == nil {
		return domain.ErrNotFound("venta")
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return domain.ErrPersistence(err)
	}

	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, lotRepo repository.LotRepository) error {
		for _, it := range items {
			if err := lotRepo.AdjustRemaining(it.LotID, it.Quantity); err != nil {
				return err
			}
		}
		return saleRepo.Delete(id)
	})
	if err != nil {
		return domain.ErrPersistence(err)
	}
	return nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:        sale.ID,
		ClientID:  sale.ClientID,
		Date:      sale.Date,
		Type:      sale.Type,
		Status:    sale.Status,
		Subtotal:  sale.Subtotal,
		Tax:       sale.Tax,
		Total:     sale.Total,
		Notes:     sale.Notes,
		Channel:   sale.Channel,
		CreatedAt: sale.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			LotID:     it.LotID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return resp
}
