package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kinds de movimiento de stock.
const (
	StockKindIN   = "IN"   // entrada (reposición, compra)
	StockKindOUT  = "OUT"  // salida manual (merma, ajuste)
	StockKindSOLD = "SOLD" // venta registrada por el punto de venta
)

// StockMovement representa un movimiento de stock inmutable (append-only).
// Quantity es siempre no-negativa; el signo lo determina Kind. El stock
// actual de un ítem nunca se persiste como autoritativo: se deriva del log.
type StockMovement struct {
	ID         string
	CompanyID  string
	ItemID     string // partición por la que se agrupan los saldos
	Kind       string // IN, OUT, SOLD
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal // costo unitario declarado en entradas
	Note       string
	OccurredAt time.Time
	CreatedAt  time.Time
	CreatedBy  string // UserID
}

// Inbound indica si el movimiento suma al stock del ítem.
func (m *StockMovement) Inbound() bool {
	return m.Kind == StockKindIN
}
