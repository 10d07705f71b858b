package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DrawerCloseDTO fila del cierre diario de caja: un cajón con su arrastre,
// entradas y salidas del día y saldo de cierre.
type DrawerCloseDTO struct {
	DrawerID   string          `json:"drawer_id"`
	DrawerName string          `json:"drawer_name"`
	Forwarded  decimal.Decimal `json:"forwarded"`
	PeriodIn   decimal.Decimal `json:"period_in"`
	PeriodOut  decimal.Decimal `json:"period_out"`
	Closing    decimal.Decimal `json:"closing"`
}

// DailyCloseDTO resumen del cierre diario de la empresa.
type DailyCloseDTO struct {
	Day      time.Time        `json:"day"`
	Drawers  []DrawerCloseDTO `json:"drawers"`
	TotalIn  decimal.Decimal  `json:"total_in"`
	TotalOut decimal.Decimal  `json:"total_out"`
	Closing  decimal.Decimal  `json:"closing"`
}
