package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/application/sales"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/allocation"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
	"github.com/comercia/comercia-api/pkg/logger"
)

// UseCase implementa el checkout de la tienda online: asigna lotes al
// carrito, registra la venta como carrito abandonado y genera la preferencia
// de pago en la pasarela. El webhook posterior resuelve el estado final.
type UseCase struct {
	saleRepo    repository.SaleRepository
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
	txRunner    sales.TxRunner
	gateway     PreferenceCreator
	log         *logger.Logger
}

func NewUseCase(
	saleRepo repository.SaleRepository,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	txRunner sales.TxRunner,
	gateway PreferenceCreator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		saleRepo:    saleRepo,
		lotRepo:     lotRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
		gateway:     gateway,
		log:         log,
	}
}

// Checkout procesa un carrito online. El stock se descuenta al crear la
// venta, no al pagar: un carrito abandonado retiene su stock hasta que se
// elimine o se cancele con reposición manual.
func (uc *UseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput("el carrito está vacío")
	}
	if in.Buyer.Email == "" {
		return nil, domain.ErrInvalidInput("falta el email del comprador")
	}

	// Asignación de lotes para todo el carrito antes de escribir nada.
	var saleItems []*entity.SaleItem
	var prefItems []PreferenceItem
	subtotal := decimal.Zero
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, domain.ErrPersistence(err)
		}
		if product == nil {
			return nil, domain.ErrNotFound("producto " + line.ProductID)
		}
		lots, err := uc.lotRepo.ListCandidates(line.ProductID, "")
		if err != nil {
			return nil, domain.ErrPersistence(err)
		}
		candidates := make([]allocation.CandidateLot, 0, len(lots))
		for _, l := range lots {
			candidates = append(candidates, allocation.FromLot(l))
		}
		allocs, err := allocation.Allocate(product.Name, candidates, line.Quantity)
		if err != nil {
			return nil, err
		}
		for _, a := range allocs {
			qty := decimal.NewFromInt(a.Quantity)
			saleItems = append(saleItems, &entity.SaleItem{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				LotID:     a.LotID,
				Quantity:  qty,
				UnitPrice: product.Price,
			})
			subtotal = subtotal.Add(qty.Mul(product.Price))
		}
		prefItems = append(prefItems, PreferenceItem{
			Title:     product.Name,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
	}
	subtotal = subtotal.Round(2)

	externalRef := uuid.New().String()
	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		Date:        now,
		Type:        entity.SaleTypeSale,
		Status:      entity.SaleStatusAbandonedCart,
		Subtotal:    subtotal,
		Tax:         decimal.Zero,
		Total:       subtotal.Add(in.ShippingCost),
		Notes:       buyerNotes(in.Buyer),
		Channel:     entity.ChannelOnline,
		ExternalRef: externalRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, it := range saleItems {
		it.SaleID = sale.ID
	}

	// Mismo esquema de dos fases que las ventas de mostrador: cabecera fuera
	// de la tx, líneas + descuento dentro, borrado compensatorio si falla.
	if err := uc.saleRepo.CreateHeader(sale); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, lotRepo repository.LotRepository) error {
		for _, it := range saleItems {
			if err := saleRepo.CreateItem(it); err != nil {
				return err
			}
			if err := lotRepo.AdjustRemaining(it.LotID, it.Quantity.Neg()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).
			Msg("fallo al registrar el carrito; borrando cabecera huérfana")
		if compErr := uc.saleRepo.Delete(sale.ID); compErr != nil {
			uc.log.Error().Err(compErr).Str("sale_id", sale.ID).
				Msg("falló el borrado compensatorio del carrito")
			return nil, domain.ErrPersistence(compErr)
		}
		return nil, domain.ErrPersistence(err)
	}

	// La venta ya quedó como carrito abandonado: si la pasarela falla, el
	// carrito persiste con su stock retenido y el comprador puede reintentar.
	redirectURL, err := uc.gateway.CreatePreference(ctx, externalRef, prefItems, PreferenceBuyer(in.Buyer), in.ShippingCost)
	if err != nil {
		uc.log.Error().Err(err).Str("sale_id", sale.ID).
			Msg("la pasarela rechazó la creación de la preferencia")
		return nil, fmt.Errorf("crear preferencia de pago: %w", err)
	}

	return &dto.CheckoutResponse{SaleID: sale.ID, RedirectURL: redirectURL}, nil
}

// HandleWebhook resuelve el estado final de un carrito según lo que informe
// la pasarela: approved lo marca pagado, rejected lo cancela.
func (uc *UseCase) HandleWebhook(in dto.PaymentWebhookRequest) error {
	if in.ExternalRef == "" {
		return domain.ErrInvalidInput("falta la referencia externa")
	}
	var status string
	switch in.Status {
	case "approved":
		status = entity.SaleStatusPaid
	case "rejected":
		status = entity.SaleStatusCancelled
	default:
		return domain.ErrInvalidInput("estado de pasarela desconocido: " + in.Status)
	}

	sale, err := uc.saleRepo.GetByExternalRef(in.ExternalRef)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	if sale == nil {
		return domain.ErrNotFound("venta con referencia " + in.ExternalRef)
	}
	if err := uc.saleRepo.UpdateStatus(sale.ID, status); err != nil {
		return domain.ErrPersistence(err)
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("status", status).
		Msg("webhook de pago procesado")
	return nil
}

func buyerNotes(b dto.BuyerInfo) string {
	return fmt.Sprintf("Comprador: %s <%s> Tel: %s Envío: %s, %s (%s)",
		b.Name, b.Email, b.Phone, b.Address, b.City, b.ZipCode)
}
