package entity

import "time"

// Classification representa una subetiqueta de movimientos de caja (categoría
// de gasto: arriendo, servicios, proveedores...). Solo puede eliminarse si
// ningún movimiento la referencia, o tras reasignar sus movimientos a otra
// clasificación en el mismo paso atómico.
type Classification struct {
	ID        string
	CompanyID string // scope dueño de la clasificación
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
