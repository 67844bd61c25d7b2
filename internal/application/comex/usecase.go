package comex

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/comex"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

// Estados de una cotización COMEX.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

func validQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// UseCase cotizaciones de exportación. Los totales se calculan una sola vez
// al crear (domain/comex) y quedan congelados; un cambio de tipo de cambio
// posterior no los toca.
type UseCase struct {
	repo       repository.ExportQuoteRepository
	clientRepo repository.ClientRepository
}

func NewUseCase(repo repository.ExportQuoteRepository, clientRepo repository.ClientRepository) *UseCase {
	return &UseCase{repo: repo, clientRepo: clientRepo}
}

// Create crea una cotización calculando FOB, seguro y total según incoterm.
func (uc *UseCase) Create(in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if !entity.ValidIncoterm(in.Incoterm) {
		return nil, domain.ErrInvalidInput("incoterm inválido: " + in.Incoterm)
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput("la cotización necesita al menos una línea")
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if client == nil {
		return nil, domain.ErrNotFound("cliente")
	}

	lines := make([]comex.QuoteLine, 0, len(in.Items))
	for _, row := range in.Items {
		if row.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput("las cantidades deben ser positivas")
		}
		lines = append(lines, comex.QuoteLine{
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
		})
	}
	totals := comex.Compute(in.Incoterm, lines, in.FreightCost, in.InsuranceRate)

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now()
	quote := &entity.ExportQuote{
		ID:             uuid.New().String(),
		ClientID:       in.ClientID,
		Incoterm:       in.Incoterm,
		Currency:       currency,
		ExchangeRate:   in.ExchangeRate,
		FreightCost:    in.FreightCost,
		InsuranceRate:  in.InsuranceRate,
		FOBTotal:       totals.FOB,
		InsuranceTotal: totals.Insurance,
		GrandTotal:     totals.GrandTotal,
		Status:         QuoteStatusDraft,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(quote); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	for _, row := range in.Items {
		item := &entity.ExportQuoteItem{
			ID:        uuid.New().String(),
			QuoteID:   quote.ID,
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
		}
		if err := uc.repo.CreateItem(item); err != nil {
			return nil, domain.ErrPersistence(err)
		}
	}
	return toQuoteResponse(quote), nil
}

// GetByID obtiene una cotización.
func (uc *UseCase) GetByID(id string) (*dto.QuoteResponse, error) {
	quote, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if quote == nil {
		return nil, domain.ErrNotFound("cotización")
	}
	return toQuoteResponse(quote), nil
}

// List lista cotizaciones paginadas.
func (uc *UseCase) List(limit, offset int) (*dto.QuoteListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	quotes, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	out := &dto.QuoteListResponse{
		Items: make([]dto.QuoteResponse, 0, len(quotes)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, q := range quotes {
		out.Items = append(out.Items, *toQuoteResponse(q))
	}
	return out, nil
}

// UpdateStatus cambia el estado de una cotización (draft/sent/accepted/rejected).
func (uc *UseCase) UpdateStatus(id, status string) (*dto.QuoteResponse, error) {
	if !validQuoteStatus(status) {
		return nil, domain.ErrInvalidInput("estado de cotización inválido: " + status)
	}
	quote, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if quote == nil {
		return nil, domain.ErrNotFound("cotización")
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	quote.Status = status
	return toQuoteResponse(quote), nil
}

func toQuoteResponse(q *entity.ExportQuote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:             q.ID,
		ClientID:       q.ClientID,
		Incoterm:       q.Incoterm,
		Currency:       q.Currency,
		ExchangeRate:   q.ExchangeRate,
		FreightCost:    q.FreightCost,
		InsuranceRate:  q.InsuranceRate,
		FOBTotal:       q.FOBTotal,
		InsuranceTotal: q.InsuranceTotal,
		GrandTotal:     q.GrandTotal,
		LocalTotal:     comex.ConvertLocal(q.GrandTotal, q.ExchangeRate),
		Status:         q.Status,
		Notes:          q.Notes,
		CreatedAt:      q.CreatedAt,
	}
}
