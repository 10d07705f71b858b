package classification

import (
	"context"

	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única garantía de atomicidad de
// TransferAndDelete: reasignar movimientos y borrar la clasificación deben
// ser un solo unit of work, nunca dos escrituras independientes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.CashMovementRepository,
		classRepo repository.ClassificationRepository,
	) error) error
}
