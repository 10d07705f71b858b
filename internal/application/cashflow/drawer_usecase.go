package cashflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// DrawerUseCase CRUD de cajones de caja.
type DrawerUseCase struct {
	drawerRepo repository.DrawerRepository
}

// NewDrawerUseCase construye el caso de uso.
func NewDrawerUseCase(drawerRepo repository.DrawerRepository) *DrawerUseCase {
	return &DrawerUseCase{drawerRepo: drawerRepo}
}

// Create registra un cajón nuevo.
func (uc *DrawerUseCase) Create(companyID string, in dto.CreateDrawerRequest) (*dto.DrawerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	drawer := &entity.Drawer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.drawerRepo.Create(drawer); err != nil {
		return nil, err
	}
	return &dto.DrawerResponse{ID: drawer.ID, Name: drawer.Name, CreatedAt: drawer.CreatedAt}, nil
}

// List devuelve los cajones de la empresa.
func (uc *DrawerUseCase) List(companyID string, page dto.PageRequest) ([]dto.DrawerResponse, error) {
	page.DefaultPage()
	drawers, err := uc.drawerRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DrawerResponse, 0, len(drawers))
	for _, d := range drawers {
		out = append(out, dto.DrawerResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt})
	}
	return out, nil
}
