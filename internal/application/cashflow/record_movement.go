package cashflow

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

// RecordMovementUseCase registra movimientos de caja (CASH_IN / CASH_OUT).
// Cada registro es un único insert append-only: la base serializa los appends
// concurrentes por sí sola, no hay estado compartido en el proceso.
type RecordMovementUseCase struct {
	movRepo    repository.CashMovementRepository
	drawerRepo repository.DrawerRepository
	classRepo  repository.ClassificationRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	movRepo repository.CashMovementRepository,
	drawerRepo repository.DrawerRepository,
	classRepo repository.ClassificationRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{movRepo: movRepo, drawerRepo: drawerRepo, classRepo: classRepo}
}

// Record valida y persiste un movimiento de caja inmutable. Las correcciones
// posteriores se hacen con movimientos compensatorios, nunca editando.
func (uc *RecordMovementUseCase) Record(companyID, userID string, in dto.RecordCashMovementRequest) (*dto.CashMovementResponse, error) {
	if in.Kind != entity.CashKindIN && in.Kind != entity.CashKindOUT {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	drawer, err := uc.drawerRepo.GetByID(in.DrawerID)
	if err != nil {
		return nil, err
	}
	if drawer == nil {
		return nil, domain.ErrNotFound
	}
	if drawer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.ClassificationID != "" {
		class, err := uc.classRepo.GetByID(in.ClassificationID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, domain.ErrNotFound
		}
		if class.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	occurredAt := now
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	mov := &entity.CashMovement{
		// La fecha de negocio va truncada a día; la hora exacta queda en
		// CreatedAt como desempate de orden.
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		DrawerID:         in.DrawerID,
		ClassificationID: in.ClassificationID,
		Kind:             in.Kind,
		Amount:           in.Amount,
		Note:             in.Note,
		OccurredAt:       ledger.DateOf(occurredAt),
		CreatedAt:        now,
		CreatedBy:        userID,
	}
	if err := uc.movRepo.Create(mov); err != nil {
		return nil, err
	}
	return &dto.CashMovementResponse{
		ID:               mov.ID,
		DrawerID:         mov.DrawerID,
		ClassificationID: mov.ClassificationID,
		Kind:             mov.Kind,
		Amount:           mov.Amount,
		Note:             mov.Note,
		OccurredAt:       mov.OccurredAt,
		CreatedAt:        mov.CreatedAt,
	}, nil
}
