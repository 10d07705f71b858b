package repository

import "github.com/jhoicas/Trastienda-api/internal/domain/entity"

// DrawerRepository define el puerto de persistencia para cajones de caja (DIP).
type DrawerRepository interface {
	Create(drawer *entity.Drawer) error
	GetByID(id string) (*entity.Drawer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Drawer, error)
}
