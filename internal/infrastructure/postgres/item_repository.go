package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

// Create persiste un ítem. SKU tiene unique (company_id, sku).
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, company_id, sku, name, unit_cost, price, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.SKU, item.Name,
		item.UnitCost, item.Price, item.LowStockThreshold,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, company_id, sku, name, unit_cost, price, low_stock_threshold, created_at, updated_at
		FROM items WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id))
}

// GetByCompanyAndSKU obtiene un ítem por empresa y SKU.
func (r *ItemRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Item, error) {
	query := `
		SELECT id, company_id, sku, name, unit_cost, price, low_stock_threshold, created_at, updated_at
		FROM items WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, companyID, sku))
}

// ListByCompany lista los ítems de la empresa ordenados por nombre.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, company_id, sku, name, unit_cost, price, low_stock_threshold, created_at, updated_at
		FROM items WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.SKU, &i.Name,
			&i.UnitCost, &i.Price, &i.LowStockThreshold, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del ítem.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, unit_cost = $3, price = $4, low_stock_threshold = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		item.ID, item.Name, item.UnitCost, item.Price, item.LowStockThreshold, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ThresholdFor devuelve el umbral propio del ítem (nil si usa el global).
func (r *ItemRepo) ThresholdFor(id string) (*decimal.Decimal, error) {
	query := `SELECT low_stock_threshold FROM items WHERE id = $1`
	var threshold *decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query, id).Scan(&threshold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("threshold for item: %w", err)
	}
	return threshold, nil
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(&i.ID, &i.CompanyID, &i.SKU, &i.Name,
		&i.UnitCost, &i.Price, &i.LowStockThreshold, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}
