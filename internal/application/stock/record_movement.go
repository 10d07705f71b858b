package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock (IN, OUT, SOLD) como
// appends inmutables. El evento SOLD normalmente llega del punto de venta.
type RecordMovementUseCase struct {
	movRepo  repository.StockMovementRepository
	itemRepo repository.ItemRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(movRepo repository.StockMovementRepository, itemRepo repository.ItemRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{movRepo: movRepo, itemRepo: itemRepo}
}

// Record valida y persiste un movimiento de stock. En entradas (IN) el costo
// unitario es obligatorio y no-negativo; en OUT/SOLD se ignora.
func (uc *RecordMovementUseCase) Record(companyID, userID string, in dto.RecordStockMovementRequest) error {
	switch in.Kind {
	case entity.StockKindIN:
		if in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.StockKindOUT, entity.StockKindSOLD:
		// sin costo declarado
	default:
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return domain.ErrForbidden
	}

	now := time.Now()
	occurredAt := now
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	unitCost := item.UnitCost
	if in.Kind == entity.StockKindIN {
		unitCost = *in.UnitCost
	}
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		ItemID:     in.ItemID,
		Kind:       in.Kind,
		Quantity:   in.Quantity,
		UnitCost:   unitCost,
		Note:       in.Note,
		OccurredAt: ledger.DateOf(occurredAt),
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	return uc.movRepo.Create(mov)
}
