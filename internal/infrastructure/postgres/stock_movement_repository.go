package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock (append-only).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, company_id, item_id, kind, quantity, unit_cost, note, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.ItemID, movement.Kind,
		movement.Quantity, movement.UnitCost, movement.Note,
		movement.OccurredAt, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos del ítem ordenados por
// (occurred_at, created_at).
func (r *StockMovementRepo) ListByItem(itemID string, until *time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, company_id, item_id, kind, quantity, unit_cost, note, occurred_at, created_at, created_by
		FROM stock_movements WHERE item_id = $1`
	args := []any{itemID}
	if until != nil {
		query += " AND occurred_at <= $2"
		args = append(args, *until)
	}
	query += " ORDER BY occurred_at, created_at"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ItemID, &m.Kind,
			&m.Quantity, &m.UnitCost, &m.Note, &m.OccurredAt, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CurrentStockByItem agrega IN − OUT − SOLD por ítem directamente sobre el
// log. El nivel nunca se materializa como autoritativo: si se corrige la
// historia, este agregado se corrige solo.
func (r *StockMovementRepo) CurrentStockByItem(ctx context.Context, companyID string) ([]repository.ItemStockRow, error) {
	query := `
		SELECT i.id, i.sku, i.name, i.low_stock_threshold,
		       COALESCE(SUM(CASE WHEN m.kind = 'IN' THEN m.quantity ELSE -m.quantity END), 0) AS current_stock
		FROM items i
		LEFT JOIN stock_movements m ON m.item_id = i.id
		WHERE i.company_id = $1
		GROUP BY i.id, i.sku, i.name, i.low_stock_threshold`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("current stock by item: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemStockRow
	for rows.Next() {
		var row repository.ItemStockRow
		if err := rows.Scan(&row.ItemID, &row.SKU, &row.Name, &row.Threshold, &row.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
