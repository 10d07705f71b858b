package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para ítems del inventario (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Item, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	// ThresholdFor devuelve el umbral de stock bajo del ítem; nil significa
	// que el ítem no define uno propio y aplica el global configurado.
	ThresholdFor(id string) (*decimal.Decimal, error)
}
