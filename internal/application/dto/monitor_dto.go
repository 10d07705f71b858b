package dto

import "github.com/shopspring/decimal"

// LowStockItemDTO ítem bajo o cerca de su umbral de reposición.
type LowStockItemDTO struct {
	ItemID       string          `json:"item_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Threshold    decimal.Decimal `json:"threshold"` // propio del ítem o global
}

// CashRiskDTO resultado de evaluar el riesgo de efectivo de un cajón.
type CashRiskDTO struct {
	DrawerID string          `json:"drawer_id"`
	Balance  decimal.Decimal `json:"balance"`
	Ceiling  decimal.Decimal `json:"ceiling"`
	AtRisk   bool            `json:"at_risk"` // balance > techo configurado
}
