package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trastienda-api/internal/application/batch"
	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// BatchHandler maneja la reposición masiva de stock. La API expone el lote
// como una sola petición: las fases seleccionar → revisar → commit corren
// completas dentro del request; la edición candidato a candidato es de la UI.
type BatchHandler struct {
	txRunner batch.TxRunner
	itemRepo repository.ItemRepository
}

// NewBatchHandler construye el handler.
func NewBatchHandler(txRunner batch.TxRunner, itemRepo repository.ItemRepository) *BatchHandler {
	return &BatchHandler{txRunner: txRunner, itemRepo: itemRepo}
}

// Commit godoc
// @Summary      Aplicar un lote de reposición
// @Description  Valida todos los candidatos y, si ninguno tiene errores, los
//
//	aplica como movimientos IN en una única transacción. Con errores
//	de campo responde 400 con la lista completa y no aplica nada.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchCommitRequest  true  "candidates"
// @Success      201   {object}  dto.BatchCommitResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/batch [post]
func (h *BatchHandler) Commit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.BatchCommitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	p := batch.NewPipeline(h.txRunner, h.itemRepo, companyID, userID)
	var fieldErrs []batch.FieldError
	for _, cand := range in.Candidates {
		errs, err := p.AddCandidate(batch.Candidate{
			ItemID:    cand.ItemID,
			Quantity:  cand.Quantity,
			UnitCost:  cand.UnitCost,
			Note:      cand.Note,
			Confirmed: true,
		})
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote inválido"})
		}
		fieldErrs = append(fieldErrs, errs...)
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":   "BATCH_VALIDATION",
			"errors": toFieldErrorDTOs(fieldErrs),
		})
	}
	if err := p.Review(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el lote no tiene candidatos confirmados"})
	}
	applied, err := p.Commit(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrAtomicityViolation) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BATCH_FAILED", Message: "el lote no se aplicó; ningún movimiento quedó registrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el lote tiene errores de validación"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchCommitResponse{Applied: applied})
}

func toFieldErrorDTOs(errs []batch.FieldError) []dto.BatchFieldErrorDTO {
	out := make([]dto.BatchFieldErrorDTO, 0, len(errs))
	for _, e := range errs {
		out = append(out, dto.BatchFieldErrorDTO{Candidate: e.Candidate, Field: e.Field, Message: e.Message})
	}
	return out
}
