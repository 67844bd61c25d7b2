package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo implementación del puerto PriceListRepository sobre PostgreSQL.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador de listas de precios.
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

// Create persiste la cabecera de una lista de precios.
func (r *PriceListRepo) Create(list *entity.PriceList) error {
	query := `
		INSERT INTO price_lists (id, name, tier, currency, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		list.ID, list.Name, list.Tier, list.Currency, list.Notes, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price list: %w", err)
	}
	return nil
}

// CreateItem persiste una fila de la lista.
func (r *PriceListRepo) CreateItem(item *entity.PriceListItem) error {
	query := `
		INSERT INTO price_list_items (id, price_list_id, product_id, product_name, unit, price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PriceListID, item.ProductID, item.ProductName, item.Unit, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert price list item: %w", err)
	}
	return nil
}

// GetByID obtiene una lista por ID.
func (r *PriceListRepo) GetByID(id string) (*entity.PriceList, error) {
	query := `SELECT id, name, tier, currency, notes, created_at, updated_at FROM price_lists WHERE id = $1`
	var pl entity.PriceList
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pl.ID, &pl.Name, &pl.Tier, &pl.Currency, &pl.Notes, &pl.CreatedAt, &pl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price list: %w", err)
	}
	return &pl, nil
}

// GetItems devuelve las filas de una lista ordenadas por nombre de producto.
func (r *PriceListRepo) GetItems(priceListID string) ([]*entity.PriceListItem, error) {
	query := `
		SELECT id, price_list_id, product_id, product_name, unit, price
		FROM price_list_items WHERE price_list_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(context.Background(), query, priceListID)
	if err != nil {
		return nil, fmt.Errorf("list price list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceListItem
	for rows.Next() {
		var it entity.PriceListItem
		if err := rows.Scan(&it.ID, &it.PriceListID, &it.ProductID, &it.ProductName, &it.Unit, &it.Price); err != nil {
			return nil, fmt.Errorf("scan price list item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista las cabeceras con paginación.
func (r *PriceListRepo) List(limit, offset int) ([]*entity.PriceList, error) {
	query := `
		SELECT id, name, tier, currency, notes, created_at, updated_at
		FROM price_lists ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceList
	for rows.Next() {
		var pl entity.PriceList
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Tier, &pl.Currency, &pl.Notes, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price list: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}

// Delete elimina la lista y sus filas.
func (r *PriceListRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM price_list_items WHERE price_list_id = $1`, id); err != nil {
		return fmt.Errorf("delete price list items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM price_lists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete price list: %w", err)
	}
	return nil
}
