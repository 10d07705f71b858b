package entity

import "time"

// Drawer representa un cajón de caja (categoría por la que se agrupan los
// movimientos de efectivo: caja principal, caja chica, remesas, etc.).
type Drawer struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
