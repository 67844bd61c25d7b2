package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no vive acá:
// se consulta y descuenta por lotes.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El código de barras, si viene, debe ser único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput("el producto necesita nombre")
	}
	if in.Barcode != "" {
		existing, err := uc.repo.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, domain.ErrPersistence(err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicate("ya existe un producto con el código de barras " + in.Barcode)
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Barcode:        in.Barcode,
		Category:       in.Category,
		Price:          in.Price,
		WholesalePrice: in.WholesalePrice,
		Unit:           in.Unit,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound("producto")
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca por código de barras exacto (flujo de escaneo en tienda).
func (uc *ProductUseCase) GetByBarcode(code string) (*dto.ProductResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput("falta el código de barras")
	}
	product, err := uc.repo.GetByBarcode(code)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound("producto con código " + code)
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos presentes del producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if product == nil {
		return nil, domain.ErrNotFound("producto")
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.WholesalePrice != nil {
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toProductResponse(product), nil
}

// List lista productos paginados.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range products {
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	if product == nil {
		return domain.ErrNotFound("producto")
	}
	if err := uc.repo.Delete(id); err != nil {
		return domain.ErrPersistence(err)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Barcode:        p.Barcode,
		Category:       p.Category,
		Price:          p.Price,
		WholesalePrice: p.WholesalePrice,
		Unit:           p.Unit,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
