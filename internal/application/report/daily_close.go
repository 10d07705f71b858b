package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// DailyCloseUseCase arma el cierre diario de caja: por cada cajón de la
// empresa, el arrastre, las entradas y salidas del día y el saldo de cierre.
// Reusa el mismo agregador que las consultas de saldo, así el PDF siempre
// cuadra con lo que muestra el dashboard.
type DailyCloseUseCase struct {
	cashRepo   repository.CashMovementRepository
	drawerRepo repository.DrawerRepository
	pdf        PDFGenerator
}

// NewDailyCloseUseCase construye el caso de uso.
func NewDailyCloseUseCase(
	cashRepo repository.CashMovementRepository,
	drawerRepo repository.DrawerRepository,
	pdf PDFGenerator,
) *DailyCloseUseCase {
	return &DailyCloseUseCase{cashRepo: cashRepo, drawerRepo: drawerRepo, pdf: pdf}
}

// Build arma el DTO del cierre del día indicado.
func (uc *DailyCloseUseCase) Build(companyID string, day time.Time) (*dto.DailyCloseDTO, error) {
	day = ledger.DateOf(day)
	drawers, err := uc.drawerRepo.ListByCompany(companyID, 100, 0)
	if err != nil {
		return nil, err
	}

	close := &dto.DailyCloseDTO{
		Day:      day,
		Drawers:  make([]dto.DrawerCloseDTO, 0, len(drawers)),
		TotalIn:  decimal.Zero,
		TotalOut: decimal.Zero,
		Closing:  decimal.Zero,
	}
	for _, d := range drawers {
		until := day
		movs, err := uc.cashRepo.ListByDrawer(d.ID, &until)
		if err != nil {
			return nil, err
		}
		entries := make([]ledger.Entry, 0, len(movs))
		for _, m := range movs {
			entries = append(entries, ledger.Entry{
				OccurredAt: m.OccurredAt,
				CreatedAt:  m.CreatedAt,
				Inbound:    m.Kind == entity.CashKindIN,
				Magnitude:  m.Amount,
			})
		}
		rb := ledger.ComputeBalance(entries, day, day)
		close.Drawers = append(close.Drawers, dto.DrawerCloseDTO{
			DrawerID:   d.ID,
			DrawerName: d.Name,
			Forwarded:  rb.Forwarded,
			PeriodIn:   rb.PeriodIn,
			PeriodOut:  rb.PeriodOut,
			Closing:    rb.Balance,
		})
		close.TotalIn = close.TotalIn.Add(rb.PeriodIn)
		close.TotalOut = close.TotalOut.Add(rb.PeriodOut)
		close.Closing = close.Closing.Add(rb.Balance)
	}
	return close, nil
}

// GeneratePDF arma el cierre y lo renderiza como PDF.
func (uc *DailyCloseUseCase) GeneratePDF(ctx context.Context, companyID string, day time.Time) ([]byte, error) {
	close, err := uc.Build(companyID, day)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateDailyClose(ctx, close)
}
