package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// WarehouseUseCase alta y consulta de bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput("la bodega necesita nombre")
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(wh); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toWarehouseResponse(wh), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound("bodega")
	}
	return toWarehouseResponse(wh), nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List() (*dto.WarehouseListResponse, error) {
	whs, err := uc.repo.List()
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.WarehouseListResponse{Items: make([]dto.WarehouseResponse, 0, len(whs))}
	for _, w := range whs {
		out.Items = append(out.Items, *toWarehouseResponse(w))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}
