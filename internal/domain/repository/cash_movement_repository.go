package repository

import (
	"time"

	"github.com/jhoicas/Trastienda-api/internal/domain/entity"
)

// CashMovementRepository define el puerto de persistencia para movimientos de
// caja (append-only: sin Update ni Delete fuera de la reasignación de
// clasificación, que siempre ocurre dentro de una transacción del TxRunner).
type CashMovementRepository interface {
	Create(movement *entity.CashMovement) error
	// ListByDrawer devuelve los movimientos del cajón ordenados por
	// (occurred_at, created_at). until limita por fecha de negocio (inclusive);
	// nil = historia completa.
	ListByDrawer(drawerID string, until *time.Time) ([]*entity.CashMovement, error)
	// CountByClassification cuenta movimientos que referencian la clasificación.
	CountByClassification(classificationID string) (int, error)
	// ReassignClassification mueve todas las referencias de fromID a toID y
	// devuelve cuántos movimientos se reasignaron.
	ReassignClassification(fromID, toID string) (int, error)
}
