package stock

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// LevelUseCase responde consultas de stock por ítem. El stock actual es
// siempre un agregado query-time sobre el log de movimientos: si se corrige
// la historia, el nivel se corrige solo.
type LevelUseCase struct {
	movRepo         repository.StockMovementRepository
	itemRepo        repository.ItemRepository
	globalThreshold decimal.Decimal
}

// NewLevelUseCase construye el caso de uso con el umbral global configurado.
func NewLevelUseCase(movRepo repository.StockMovementRepository, itemRepo repository.ItemRepository, globalThreshold decimal.Decimal) *LevelUseCase {
	return &LevelUseCase{movRepo: movRepo, itemRepo: itemRepo, globalThreshold: globalThreshold}
}

// entriesFromStock proyecta movimientos de stock a entradas del agregador.
func entriesFromStock(movs []*entity.StockMovement) []ledger.Entry {
	entries := make([]ledger.Entry, 0, len(movs))
	for _, m := range movs {
		entries = append(entries, ledger.Entry{
			OccurredAt: m.OccurredAt,
			CreatedAt:  m.CreatedAt,
			Inbound:    m.Inbound(),
			Magnitude:  m.Quantity,
		})
	}
	return entries
}

// GetItemLevel devuelve el stock actual del ítem y su umbral efectivo.
func (uc *LevelUseCase) GetItemLevel(companyID, itemID string) (*dto.ItemLevelDTO, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	movs, err := uc.movRepo.ListByItem(itemID, nil)
	if err != nil {
		return nil, err
	}
	current := ledger.BalanceAsOf(entriesFromStock(movs), ledger.DateOf(time.Now()))

	threshold := uc.globalThreshold
	if item.LowStockThreshold != nil {
		threshold = *item.LowStockThreshold
	}
	return &dto.ItemLevelDTO{
		ItemID:       item.ID,
		SKU:          item.SKU,
		Name:         item.Name,
		CurrentStock: current,
		Threshold:    threshold,
		LowStock:     current.LessThanOrEqual(threshold),
	}, nil
}

// GetRangeBalance calcula {forwarded, periodIn, periodOut, balance} del ítem
// sobre [from, to]. Ítem desconocido produce resultado en ceros, nunca error.
func (uc *LevelUseCase) GetRangeBalance(companyID, itemID string, from, to time.Time) (*dto.ItemBalanceDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item != nil && item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	out := &dto.ItemBalanceDTO{ItemID: itemID, From: from, To: to}
	rb := ledger.Zero()
	if item != nil {
		until := to
		movs, err := uc.movRepo.ListByItem(itemID, &until)
		if err != nil {
			return nil, err
		}
		rb = ledger.ComputeBalance(entriesFromStock(movs), from, to)
	}
	out.Forwarded = rb.Forwarded
	out.PeriodIn = rb.PeriodIn
	out.PeriodOut = rb.PeriodOut
	out.Balance = rb.Balance
	return out, nil
}
