package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create persiste un movimiento de caja. La tabla no tiene UPDATE ni DELETE en
// operación normal: las correcciones entran como movimientos compensatorios.
func (r *CashMovementRepo) Create(movement *entity.CashMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cash_movements (id, company_id, drawer_id, classification_id, kind, amount, note, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	classificationID := (*string)(nil)
	if movement.ClassificationID != "" {
		classificationID = &movement.ClassificationID
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CompanyID, movement.DrawerID, classificationID,
		movement.Kind, movement.Amount, movement.Note,
		movement.OccurredAt, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create cash movement: %w", err)
	}
	return nil
}

// ListByDrawer lista los movimientos del cajón ordenados por
// (occurred_at, created_at), el orden que exige el agregador.
func (r *CashMovementRepo) ListByDrawer(drawerID string, until *time.Time) ([]*entity.CashMovement, error) {
	query := `
		SELECT id, company_id, drawer_id, classification_id, kind, amount, note, occurred_at, created_at, created_by
		FROM cash_movements WHERE drawer_id = $1`
	args := []any{drawerID}
	if until != nil {
		query += " AND occurred_at <= $2"
		args = append(args, *until)
	}
	query += " ORDER BY occurred_at, created_at"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by drawer: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		var classificationID, createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.DrawerID, &classificationID, &m.Kind,
			&m.Amount, &m.Note, &m.OccurredAt, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		if classificationID != nil {
			m.ClassificationID = *classificationID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByClassification cuenta los movimientos que referencian la
// clasificación. Lee el mismo log que el agregador: dentro de una tx del
// TxRunner el conteo y la reasignación ven el mismo estado.
func (r *CashMovementRepo) CountByClassification(classificationID string) (int, error) {
	query := `SELECT count(*) FROM cash_movements WHERE classification_id = $1`
	var count int
	if err := r.q.QueryRow(context.Background(), query, classificationID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by classification: %w", err)
	}
	return count, nil
}

// ReassignClassification mueve todas las referencias de fromID a toID. Es el
// único UPDATE permitido sobre movimientos y siempre corre dentro de la tx de
// TransferAndDelete.
func (r *CashMovementRepo) ReassignClassification(fromID, toID string) (int, error) {
	query := `UPDATE cash_movements SET classification_id = $2 WHERE classification_id = $1`
	tag, err := r.q.Exec(context.Background(), query, fromID, toID)
	if err != nil {
		return 0, fmt.Errorf("reassign classification: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
