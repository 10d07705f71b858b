package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
)

// ItemStockRow es una fila del agregado de stock por ítem (query-time, nunca
// materializado como autoritativo).
type ItemStockRow struct {
	ItemID       string
	SKU          string
	Name         string
	CurrentStock decimal.Decimal
	// Threshold es el umbral propio del ítem; nil = usar el umbral global.
	Threshold *decimal.Decimal
}

// StockMovementRepository define el puerto de persistencia para movimientos de
// stock (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByItem devuelve los movimientos del ítem ordenados por
	// (occurred_at, created_at). until limita por fecha de negocio (inclusive);
	// nil = historia completa.
	ListByItem(itemID string, until *time.Time) ([]*entity.StockMovement, error)
	// CurrentStockByItem agrega IN − OUT − SOLD por ítem de la empresa,
	// directamente sobre el log de movimientos.
	CurrentStockByItem(ctx context.Context, companyID string) ([]ItemStockRow, error)
}
