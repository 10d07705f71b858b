// Package monitor deriva las vistas de alerta del back-office: stock bajo,
// ítems más surtidos y riesgo de efectivo por cajón. Solo lectura: consume la
// salida del agregador, nunca escribe.
package monitor

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// Thresholds es la configuración que el monitor consume pero no posee.
type Thresholds struct {
	GlobalLowStock  decimal.Decimal // umbral por defecto cuando el ítem no define uno
	CashRiskCeiling decimal.Decimal // techo de efectivo por cajón
}

// UseCase implementa el Threshold Monitor.
type UseCase struct {
	stockRepo  repository.StockMovementRepository
	cashRepo   repository.CashMovementRepository
	drawerRepo repository.DrawerRepository
	cfg        Thresholds
}

// NewUseCase construye el monitor.
func NewUseCase(
	stockRepo repository.StockMovementRepository,
	cashRepo repository.CashMovementRepository,
	drawerRepo repository.DrawerRepository,
	cfg Thresholds,
) *UseCase {
	return &UseCase{stockRepo: stockRepo, cashRepo: cashRepo, drawerRepo: drawerRepo, cfg: cfg}
}

// thresholdFor resuelve el umbral efectivo de una fila. La sustitución del
// global ocurre aquí dentro, no en el caller.
func (uc *UseCase) thresholdFor(row repository.ItemStockRow) decimal.Decimal {
	if row.Threshold != nil {
		return *row.Threshold
	}
	return uc.cfg.GlobalLowStock
}

// LowStock devuelve los ítems con stock actual ≤ umbral, ascendente por stock.
// Ante empate de stock el orden es estable por nombre ascendente, para que la
// lista no parpadee entre consultas repetidas.
func (uc *UseCase) LowStock(ctx context.Context, companyID string, limit int) ([]dto.LowStockItemDTO, error) {
	rows, err := uc.stockRepo.CurrentStockByItem(ctx, companyID)
	if err != nil {
		return nil, err
	}
	flagged := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		threshold := uc.thresholdFor(r)
		if r.CurrentStock.LessThanOrEqual(threshold) {
			flagged = append(flagged, dto.LowStockItemDTO{
				ItemID:       r.ItemID,
				SKU:          r.SKU,
				Name:         r.Name,
				CurrentStock: r.CurrentStock,
				Threshold:    threshold,
			})
		}
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		if !flagged[i].CurrentStock.Equal(flagged[j].CurrentStock) {
			return flagged[i].CurrentStock.LessThan(flagged[j].CurrentStock)
		}
		return flagged[i].Name < flagged[j].Name
	})
	return truncate(flagged, limit), nil
}

// MostStocked devuelve los ítems con más stock, descendente; empates por
// nombre ascendente.
func (uc *UseCase) MostStocked(ctx context.Context, companyID string, limit int) ([]dto.LowStockItemDTO, error) {
	rows, err := uc.stockRepo.CurrentStockByItem(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockItemDTO{
			ItemID:       r.ItemID,
			SKU:          r.SKU,
			Name:         r.Name,
			CurrentStock: r.CurrentStock,
			Threshold:    uc.thresholdFor(r),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CurrentStock.Equal(out[j].CurrentStock) {
			return out[i].CurrentStock.GreaterThan(out[j].CurrentStock)
		}
		return out[i].Name < out[j].Name
	})
	return truncate(out, limit), nil
}

// CashRisk evalúa si el saldo actual del cajón supera el techo configurado.
func (uc *UseCase) CashRisk(ctx context.Context, companyID, drawerID string) (*dto.CashRiskDTO, error) {
	drawer, err := uc.drawerRepo.GetByID(drawerID)
	if err != nil {
		return nil, err
	}
	if drawer == nil {
		return nil, domain.ErrNotFound
	}
	if drawer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	movs, err := uc.cashRepo.ListByDrawer(drawerID, nil)
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
	balance := ledger.BalanceAsOf(entries, ledger.DateOf(time.Now()))
	return &dto.CashRiskDTO{
		DrawerID: drawerID,
		Balance:  balance,
		Ceiling:  uc.cfg.CashRiskCeiling,
		AtRisk:   balance.GreaterThan(uc.cfg.CashRiskCeiling),
	}, nil
}

func truncate(list []dto.LowStockItemDTO, limit int) []dto.LowStockItemDTO {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
