package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trastienda-api/internal/application/classification"
	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
)

// ClassificationHandler maneja el registro de clasificaciones de caja.
type ClassificationHandler struct {
	uc *classification.RegistryUseCase
}

// NewClassificationHandler construye el handler.
func NewClassificationHandler(uc *classification.RegistryUseCase) *ClassificationHandler {
	return &ClassificationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear clasificación
// @Tags         classifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClassificationRequest  true  "name"
// @Success      201   {object}  dto.ClassificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/classifications [post]
func (h *ClassificationHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateClassificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una clasificación con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clasificaciones con conteo de uso
// @Tags         classifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ClassificationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/classifications [get]
func (h *ClassificationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.uc.List(companyID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "classifications": list})
}

// Rename godoc
// @Summary      Renombrar clasificación
// @Tags         classifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "Classification ID"
// @Param        body  body  dto.RenameClassificationRequest  true  "name"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/classifications/{id} [put]
func (h *ClassificationHandler) Rename(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RenameClassificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Rename(companyID, c.Params("id"), in); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "clasificación renombrada"})
}

// Usage godoc
// @Summary      Conteo de uso de una clasificación
// @Description  Cuenta los movimientos de caja que la referencian. El valor es
//
//	informativo: la eliminación revalida dentro de su transacción.
//
// @Tags         classifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Classification ID"
// @Success      200  {object}  map[string]int
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/classifications/{id}/usage [get]
func (h *ClassificationHandler) Usage(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	usage, err := h.uc.UsageCount(companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"usage": usage})
}

// Delete godoc
// @Summary      Eliminar clasificación sin uso
// @Description  Falla con 409 si algún movimiento la referencia; en ese caso
//
//	usar transfer para reasignar y eliminar en un paso atómico.
//
// @Tags         classifications
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Classification ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/classifications/{id} [delete]
func (h *ClassificationHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "clasificación eliminada"})
}

// Transfer godoc
// @Summary      Reasignar movimientos y eliminar la clasificación origen
// @Description  Mueve todos los movimientos a to_id y elimina la clasificación
//
//	del path, como una única transacción: o pasan ambas cosas o ninguna.
//
// @Tags         classifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "Classification ID origen"
// @Param        body  body  dto.TransferClassificationRequest  true  "to_id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/classifications/{id}/transfer [post]
func (h *ClassificationHandler) Transfer(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferClassificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.TransferAndDelete(c.Context(), companyID, c.Params("id"), in.ToID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimientos reasignados y clasificación eliminada"})
}

// mapError traduce los errores de dominio del registro a HTTP.
func (h *ClassificationHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clasificación no encontrada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrClassificationInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CLASSIFICATION_IN_USE", Message: "la clasificación tiene movimientos; use transfer"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
