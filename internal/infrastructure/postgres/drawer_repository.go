package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

var _ repository.DrawerRepository = (*DrawerRepo)(nil)

// DrawerRepo implementación de DrawerRepository sobre PostgreSQL.
type DrawerRepo struct {
	pool *pgxpool.Pool
}

func NewDrawerRepository(pool *pgxpool.Pool) *DrawerRepo {
	return &DrawerRepo{pool: pool}
}

// Create persiste un cajón de caja.
func (r *DrawerRepo) Create(drawer *entity.Drawer) error {
	if drawer.ID == "" {
		drawer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO drawers (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		drawer.ID, drawer.CompanyID, drawer.Name, drawer.CreatedAt, drawer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create drawer: %w", err)
	}
	return nil
}

// GetByID obtiene un cajón por ID.
func (r *DrawerRepo) GetByID(id string) (*entity.Drawer, error) {
	query := `SELECT id, company_id, name, created_at, updated_at FROM drawers WHERE id = $1`
	var d entity.Drawer
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get drawer: %w", err)
	}
	return &d, nil
}

// ListByCompany lista los cajones de la empresa.
func (r *DrawerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Drawer, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM drawers WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drawers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Drawer
	for rows.Next() {
		var d entity.Drawer
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan drawer: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
