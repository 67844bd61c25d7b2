package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// LotUseCase registro de producción y edición de lotes. La cantidad inicial
// de un lote nunca puede quedar por debajo de lo ya vendido.
type LotUseCase struct {
	repo        repository.LotRepository
	productRepo repository.ProductRepository
}

func NewLotUseCase(repo repository.LotRepository, productRepo repository.ProductRepository) *LotUseCase {
	return &LotUseCase{repo: repo, productRepo: productRepo}
}

// Register da de alta un lote de producción con su existencia completa.
func (uc *LotUseCase) Register(in dto.RegisterLotRequest) (*dto.LotResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput("producto, bodega y código de lote son obligatorios")
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput("la cantidad del lote debe ser positiva")
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound("producto")
	}
	now := time.Now()
	lot := &entity.Lot{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		WarehouseID:      in.WarehouseID,
		Code:             in.Code,
		InitialQuantity:  in.Quantity,
		CurrentRemaining: in.Quantity,
		ExpiryDate:       in.ExpiryDate,
		ProductionCost:   in.ProductionCost,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(lot); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toLotResponse(lot), nil
}

// GetByID obtiene un lote por ID.
func (uc *LotUseCase) GetByID(id string) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if lot == nil {
		return nil, domain.ErrNotFound("lote")
	}
	return toLotResponse(lot), nil
}

// ListByProduct lista los lotes de un producto (incluye agotados).
func (uc *LotUseCase) ListByProduct(productID string) (*dto.LotListResponse, error) {
	lots, err := uc.repo.ListByProduct(productID)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.LotListResponse{Items: make([]dto.LotResponse, 0, len(lots))}
	for _, l := range lots {
		out.Items = append(out.Items, *toLotResponse(l))
	}
	return out, nil
}

// Update edita un lote. Al cambiar la cantidad inicial, la existencia se
// mueve en la misma proporción (initial - vendido); no se permite dejar la
// cantidad inicial por debajo de las unidades ya vendidas.
func (uc *LotUseCase) Update(id string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if lot == nil {
		return nil, domain.ErrNotFound("lote")
	}
	if in.InitialQuantity != nil {
		sold := lot.SoldUnits()
		if in.InitialQuantity.LessThan(sold) {
			return nil, domain.ErrConflict(fmt.Sprintf(
				"la cantidad inicial (%s) no puede ser menor a lo ya vendido (%s)",
				in.InitialQuantity.String(), sold.String()))
		}
		lot.InitialQuantity = *in.InitialQuantity
		lot.CurrentRemaining = in.InitialQuantity.Sub(sold)
	}
	if in.ClearExpiry {
		lot.ExpiryDate = nil
	} else if in.ExpiryDate != nil {
		lot.ExpiryDate = in.ExpiryDate
	}
	if in.ProductionCost != nil {
		lot.ProductionCost = *in.ProductionCost
	}
	lot.UpdatedAt = time.Now()
	if err := uc.repo.Update(lot); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toLotResponse(lot), nil
}

// Delete elimina un lote sin ventas asociadas. Un lote con unidades vendidas
// no se borra: quedarían líneas de venta apuntando a la nada.
func (uc *LotUseCase) Delete(id string) error {
	lot, err := uc.repo.GetByID(id)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	if lot == nil {
		return domain.ErrNotFound("lote")
	}
	if lot.SoldUnits().GreaterThan(decimal.Zero) {
		return domain.ErrConflict("el lote tiene unidades vendidas; no se puede eliminar")
	}
	if err := uc.repo.Delete(id); err != nil {
		return domain.ErrPersistence(err)
	}
	return nil
}

func toLotResponse(l *entity.Lot) *dto.LotResponse {
	return &dto.LotResponse{
		ID:               l.ID,
		ProductID:        l.ProductID,
		WarehouseID:      l.WarehouseID,
		Code:             l.Code,
		InitialQuantity:  l.InitialQuantity,
		CurrentRemaining: l.CurrentRemaining,
		ExpiryDate:       l.ExpiryDate,
		ProductionCost:   l.ProductionCost,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
