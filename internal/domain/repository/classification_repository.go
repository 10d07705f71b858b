package repository

import "github.com/jhoicas/Trastienda-api/internal/domain/entity"

// ClassificationRepository define el puerto de persistencia para
// clasificaciones de movimientos de caja (DIP).
type ClassificationRepository interface {
	Create(classification *entity.Classification) error
	GetByID(id string) (*entity.Classification, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Classification, error)
	Update(classification *entity.Classification) error
	Delete(id string) error
}
