package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto o SKU del inventario.
// LowStockThreshold es opcional: nil significa usar el umbral global
// configurado (la sustitución la hace el Threshold Monitor, no el caller).
type Item struct {
	ID                string
	CompanyID         string
	SKU               string // código único por empresa
	Name              string
	UnitCost          decimal.Decimal
	Price             decimal.Decimal
	LowStockThreshold *decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
