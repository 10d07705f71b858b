package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStockMovementRequest body para POST /api/stock/movements.
type RecordStockMovementRequest struct {
	ItemID     string           `json:"item_id" validate:"required,uuid"`
	Kind       string           `json:"kind" validate:"required,oneof=IN OUT SOLD"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Note       string           `json:"note" validate:"omitempty,max=500"`
	OccurredAt *time.Time       `json:"occurred_at"`
}

// ItemLevelDTO nivel de stock de un ítem (agregado query-time sobre el log).
type ItemLevelDTO struct {
	ItemID       string          `json:"item_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Threshold    decimal.Decimal `json:"threshold"` // propio del ítem o global
	LowStock     bool            `json:"low_stock"`
}

// ItemBalanceDTO resultado de agregar un ítem sobre un rango de fechas.
type ItemBalanceDTO struct {
	ItemID    string          `json:"item_id"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Forwarded decimal.Decimal `json:"forwarded"`
	PeriodIn  decimal.Decimal `json:"period_in"`
	PeriodOut decimal.Decimal `json:"period_out"`
	Balance   decimal.Decimal `json:"balance"`
}

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU               string           `json:"sku" validate:"required,min=1,max=60"`
	Name              string           `json:"name" validate:"required,min=1,max=200"`
	UnitCost          decimal.Decimal  `json:"unit_cost"`
	Price             decimal.Decimal  `json:"price"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	UnitCost          decimal.Decimal  `json:"unit_cost"`
	Price             decimal.Decimal  `json:"price"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}
