package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

var _ repository.ClassificationRepository = (*ClassificationRepo)(nil)

// ClassificationRepo implementación sobre PostgreSQL (usable con pool o tx).
type ClassificationRepo struct {
	q Querier
}

// NewClassificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClassificationRepository(q Querier) *ClassificationRepo {
	return &ClassificationRepo{q: q}
}

// Create persiste una clasificación.
func (r *ClassificationRepo) Create(classification *entity.Classification) error {
	if classification.ID == "" {
		classification.ID = uuid.New().String()
	}
	query := `
		INSERT INTO classifications (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		classification.ID, classification.CompanyID, classification.Name,
		classification.CreatedAt, classification.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create classification: %w", err)
	}
	return nil
}

// GetByID obtiene una clasificación por ID.
func (r *ClassificationRepo) GetByID(id string) (*entity.Classification, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM classifications WHERE id = $1`
	var c entity.Classification
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get classification: %w", err)
	}
	return &c, nil
}

// ListByCompany lista las clasificaciones de la empresa.
func (r *ClassificationRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Classification, error) {
	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM classifications WHERE company_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Classification
	for rows.Next() {
		var c entity.Classification
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza el nombre de la clasificación.
func (r *ClassificationRepo) Update(classification *entity.Classification) error {
	query := `UPDATE classifications SET name = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		classification.ID, classification.Name, classification.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la clasificación. El guard de uso es del caso de uso, no un
// cascade de base de datos: un cascade silencioso corrompería la historia.
func (r *ClassificationRepo) Delete(id string) error {
	query := `DELETE FROM classifications WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
