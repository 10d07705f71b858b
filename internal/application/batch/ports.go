package batch

import (
	"context"

	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// TxRunner ejecuta el commit del lote dentro de una transacción de BD. Todos
// los candidatos se aplican en un único unit of work: un lote a medio aplicar
// no debe ser observable por ningún lector.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
	) error) error
}
