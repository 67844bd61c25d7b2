package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// PriceListUseCase armado y consulta de listas de precios. El nombre del
// producto se desnormaliza en cada fila para que el PDF no dependa del
// catálogo vigente al momento de renderizar.
type PriceListUseCase struct {
	repo        repository.PriceListRepository
	productRepo repository.ProductRepository
}

func NewPriceListUseCase(repo repository.PriceListRepository, productRepo repository.ProductRepository) *PriceListUseCase {
	return &PriceListUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una lista de precios con sus filas. Precio cero en una fila
// significa tomar el precio del producto según el tier de la lista.
func (uc *PriceListUseCase) Create(in dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput("la lista necesita nombre")
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput("la lista necesita al menos un producto")
	}
	tier := in.Tier
	if tier == "" {
		tier = entity.TierRetail
	}
	currency := in.Currency
	if currency == "" {
		currency = "ARS"
	}

	now := time.Now()
	list := &entity.PriceList{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Tier:      tier,
		Currency:  currency,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]*entity.PriceListItem, 0, len(in.Items))
	for _, row := range in.Items {
		product, err := uc.productRepo.GetByID(row.ProductID)
		if err != nil {
			return nil, domain.ErrPersistence(err)
		}
		if product == nil {
			return nil, domain.ErrNotFound("producto " + row.ProductID)
		}
		price := row.Price
		if price.LessThanOrEqual(decimal.Zero) {
			if tier == entity.TierRetail {
				price = product.Price
			} else {
				price = product.WholesalePrice
			}
		}
		items = append(items, &entity.PriceListItem{
			ID:          uuid.New().String(),
			PriceListID: list.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Price:       price,
		})
	}

	if err := uc.repo.Create(list); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	for _, it := range items {
		if err := uc.repo.CreateItem(it); err != nil {
			return nil, domain.ErrPersistence(err)
		}
	}
	return toPriceListResponse(list, items), nil
}

// GetByID obtiene una lista con sus filas.
func (uc *PriceListUseCase) GetByID(id string) (*dto.PriceListResponse, error) {
	list, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if list == nil {
		return nil, domain.ErrNotFound("lista de precios")
	}
	items, err := uc.repo.GetItems(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toPriceListResponse(list, items), nil
}

// List lista listas de precios paginadas (sin filas).
func (uc *PriceListUseCase) List(limit, offset int) (*dto.PriceListListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	lists, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.PriceListListResponse{
		Items: make([]dto.PriceListResponse, 0, len(lists)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, l := range lists {
		out.Items = append(out.Items, *toPriceListResponse(l, nil))
	}
	return out, nil
}

// Delete elimina una lista y sus filas.
func (uc *PriceListUseCase) Delete(id string) error {
	list, err := uc.repo.GetByID(id)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	if list == nil {
		return domain.ErrNotFound("lista de precios")
	}
	if err := uc.repo.Delete(id); err != nil {
		return domain.ErrPersistence(err)
	}
	return nil
}

func toPriceListResponse(l *entity.PriceList, items []*entity.PriceListItem) *dto.PriceListResponse {
	resp := &dto.PriceListResponse{
		ID:        l.ID,
		Name:      l.Name,
		Tier:      l.Tier,
		Currency:  l.Currency,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PriceListItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Unit:        it.Unit,
			Price:       it.Price,
		})
	}
	return resp
}
