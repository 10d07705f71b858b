package cashflow

import (
	"time"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// BalanceUseCase responde consultas de saldo de caja por cajón y rango.
// Toda agregación pasa por ledger.ComputeBalance: los dashboards (rango de un
// día) y los reportes financieros (multi-día) comparten el mismo cálculo.
type BalanceUseCase struct {
	movRepo    repository.CashMovementRepository
	drawerRepo repository.DrawerRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(movRepo repository.CashMovementRepository, drawerRepo repository.DrawerRepository) *BalanceUseCase {
	return &BalanceUseCase{movRepo: movRepo, drawerRepo: drawerRepo}
}

// entriesFromCash proyecta movimientos de caja a entradas del agregador.
func entriesFromCash(movs []*entity.CashMovement) []ledger.Entry {
	entries := make([]ledger.Entry, 0, len(movs))
	for _, m := range movs {
		entries = append(entries, ledger.Entry{
			OccurredAt: m.OccurredAt,
			CreatedAt:  m.CreatedAt,
			Inbound:    m.Inbound(),
			Magnitude:  m.Amount,
		})
	}
	return entries
}

// GetRangeBalance calcula {forwarded, periodIn, periodOut, balance} del cajón
// sobre [from, to]. Un cajón desconocido produce resultado en ceros, nunca
// error: el caller debe tolerar particiones sin movimientos.
func (uc *BalanceUseCase) GetRangeBalance(companyID, drawerID string, from, to time.Time) (*dto.DrawerBalanceDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	drawer, err := uc.drawerRepo.GetByID(drawerID)
	if err != nil {
		return nil, err
	}
	if drawer != nil && drawer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	out := &dto.DrawerBalanceDTO{DrawerID: drawerID, From: from, To: to}
	rb := ledger.Zero()
	if drawer != nil {
		until := to
		movs, err := uc.movRepo.ListByDrawer(drawerID, &until)
		if err != nil {
			return nil, err
		}
		rb = ledger.ComputeBalance(entriesFromCash(movs), from, to)
	}
	out.Forwarded = rb.Forwarded
	out.PeriodIn = rb.PeriodIn
	out.PeriodOut = rb.PeriodOut
	out.Balance = rb.Balance
	return out, nil
}

// GetDayBalance es la forma de consulta de los dashboards: el rango colapsa a
// un solo día.
func (uc *BalanceUseCase) GetDayBalance(companyID, drawerID string, day time.Time) (*dto.DrawerBalanceDTO, error) {
	return uc.GetRangeBalance(companyID, drawerID, day, day)
}
