package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kinds de movimiento de caja.
const (
	CashKindIN  = "CASH_IN"  // ingreso al cajón (venta, apertura)
	CashKindOUT = "CASH_OUT" // retiro: COGS, OPEX o remesa
)

// CashMovement representa un movimiento de caja inmutable (append-only).
// Amount es siempre no-negativo; el signo lo determina Kind.
// OccurredAt es la fecha de negocio (se permite backdating); CreatedAt
// desempata el orden entre movimientos del mismo día. Las correcciones se
// hacen con movimientos compensatorios, nunca mutando el registro.
type CashMovement struct {
	ID               string
	CompanyID        string
	DrawerID         string // partición por la que se agrupan los saldos
	ClassificationID string // opcional: subetiqueta para reportes tipo OPEX
	Kind             string // CASH_IN, CASH_OUT
	Amount           decimal.Decimal
	Note             string
	OccurredAt       time.Time
	CreatedAt        time.Time
	CreatedBy        string // UserID
}

// Inbound indica si el movimiento suma al saldo del cajón.
func (m *CashMovement) Inbound() bool {
	return m.Kind == CashKindIN
}
