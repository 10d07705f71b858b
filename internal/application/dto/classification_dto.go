package dto

import "time"

// CreateClassificationRequest body para POST /api/classifications.
type CreateClassificationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// RenameClassificationRequest body para PUT /api/classifications/:id.
type RenameClassificationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// TransferClassificationRequest body para POST /api/classifications/:id/transfer.
// Reasigna todos los movimientos a to_id y elimina la clasificación origen en
// un único paso atómico.
type TransferClassificationRequest struct {
	ToID string `json:"to_id" validate:"required,uuid"`
}

// ClassificationResponse salida de una clasificación.
type ClassificationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Usage     int       `json:"usage,omitempty"` // movimientos que la referencian
	CreatedAt time.Time `json:"created_at"`
}

// CreateDrawerRequest body para POST /api/drawers.
type CreateDrawerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// DrawerResponse salida de un cajón.
type DrawerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
