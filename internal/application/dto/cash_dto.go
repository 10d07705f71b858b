package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordCashMovementRequest body para POST /api/cash/movements.
// occurred_at opcional: vacío = ahora (se permite backdating).
type RecordCashMovementRequest struct {
	DrawerID         string          `json:"drawer_id" validate:"required,uuid"`
	ClassificationID string          `json:"classification_id" validate:"omitempty,uuid"`
	Kind             string          `json:"kind" validate:"required,oneof=CASH_IN CASH_OUT"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note" validate:"omitempty,max=500"`
	OccurredAt       *time.Time      `json:"occurred_at"`
}

// DrawerBalanceDTO resultado de agregar un cajón sobre un rango de fechas.
type DrawerBalanceDTO struct {
	DrawerID  string          `json:"drawer_id"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Forwarded decimal.Decimal `json:"forwarded"` // saldo arrastrado de antes del rango
	PeriodIn  decimal.Decimal `json:"period_in"`
	PeriodOut decimal.Decimal `json:"period_out"`
	Balance   decimal.Decimal `json:"balance"`
}

// CashMovementResponse salida de un movimiento de caja.
type CashMovementResponse struct {
	ID               string          `json:"id"`
	DrawerID         string          `json:"drawer_id"`
	ClassificationID string          `json:"classification_id,omitempty"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	Note             string          `json:"note,omitempty"`
	OccurredAt       time.Time       `json:"occurred_at"`
	CreatedAt        time.Time       `json:"created_at"`
}
