package report

import (
	"context"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
)

// PDFGenerator genera la representación gráfica del cierre diario. La
// implementación concreta (Maroto) vive en infraestructura.
type PDFGenerator interface {
	GenerateDailyClose(ctx context.Context, close *dto.DailyCloseDTO) ([]byte, error)
}
