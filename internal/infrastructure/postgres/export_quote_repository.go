package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

var _ repository.ExportQuoteRepository = (*ExportQuoteRepo)(nil)

const quoteColumns = `id, client_id, incoterm, currency, exchange_rate, freight_cost, insurance_rate,
	fob_total, insurance_total, grand_total, status, notes, created_at, updated_at`

// ExportQuoteRepo implementación del puerto ExportQuoteRepository sobre PostgreSQL.
type ExportQuoteRepo struct {
	q Querier
}

// NewExportQuoteRepository construye el adaptador de cotizaciones COMEX.
func NewExportQuoteRepository(q Querier) *ExportQuoteRepo {
	return &ExportQuoteRepo{q: q}
}

// Create persiste la cabecera de una cotización con sus totales congelados.
func (r *ExportQuoteRepo) Create(quote *entity.ExportQuote) error {
	query := `
		INSERT INTO export_quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.ClientID, quote.Incoterm, quote.Currency, quote.ExchangeRate,
		quote.FreightCost, quote.InsuranceRate, quote.FOBTotal, quote.InsuranceTotal,
		quote.GrandTotal, quote.Status, quote.Notes, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert export quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *ExportQuoteRepo) CreateItem(item *entity.ExportQuoteItem) error {
	query := `
		INSERT INTO export_quote_items (id, quote_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert export quote item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *ExportQuoteRepo) GetByID(id string) (*entity.ExportQuote, error) {
	query := `SELECT ` + quoteColumns + ` FROM export_quotes WHERE id = $1`
	var qt entity.ExportQuote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&qt.ID, &qt.ClientID, &qt.Incoterm, &qt.Currency, &qt.ExchangeRate,
		&qt.FreightCost, &qt.InsuranceRate, &qt.FOBTotal, &qt.InsuranceTotal,
		&qt.GrandTotal, &qt.Status, &qt.Notes, &qt.CreatedAt, &qt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get export quote: %w", err)
	}
	return &qt, nil
}

// GetItems devuelve las líneas de una cotización.
func (r *ExportQuoteRepo) GetItems(quoteID string) ([]*entity.ExportQuoteItem, error) {
	query := `
		SELECT id, quote_id, product_id, quantity, unit_price
		FROM export_quote_items WHERE quote_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list export quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExportQuoteItem
	for rows.Next() {
		var it entity.ExportQuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan export quote item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cotizaciones, más recientes primero.
func (r *ExportQuoteRepo) List(limit, offset int) ([]*entity.ExportQuote, error) {
	query := `SELECT ` + quoteColumns + ` FROM export_quotes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list export quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExportQuote
	for rows.Next() {
		var qt entity.ExportQuote
		if err := rows.Scan(&qt.ID, &qt.ClientID, &qt.Incoterm, &qt.Currency, &qt.ExchangeRate,
			&qt.FreightCost, &qt.InsuranceRate, &qt.FOBTotal, &qt.InsuranceTotal,
			&qt.GrandTotal, &qt.Status, &qt.Notes, &qt.CreatedAt, &qt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan export quote: %w", err)
		}
		list = append(list, &qt)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de la cotización.
func (r *ExportQuoteRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE export_quotes SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update export quote status: %w", err)
	}
	return nil
}
