package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes. El nivel (tier) no se edita
// a mano: lo recalcula el sistema cuando una venta pasa a pagada.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Todo cliente nuevo arranca en nivel minorista.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput("el cliente necesita nombre")
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Tier:      entity.TierRetail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if client == nil {
		return nil, domain.ErrNotFound("cliente")
	}
	return toClientResponse(client), nil
}

// Update actualiza los campos presentes del cliente.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if client == nil {
		return nil, domain.ErrNotFound("cliente")
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.TaxID != nil {
		client.TaxID = *in.TaxID
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toClientResponse(client), nil
}

// List lista clientes paginados.
func (uc *ClientUseCase) List(limit, offset int) (*dto.ClientListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	clients, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.ClientListResponse{
		Items: make([]dto.ClientResponse, 0, len(clients)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, c := range clients {
		out.Items = append(out.Items, *toClientResponse(c))
	}
	return out, nil
}

// Delete elimina un cliente.
func (uc *ClientUseCase) Delete(id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return domain.ErrPersistence(err)
	}
	if client == nil {
		return domain.ErrNotFound("cliente")
	}
	if err := uc.repo.Delete(id); err != nil {
		return domain.ErrPersistence(err)
	}
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Tier:      c.Tier,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
