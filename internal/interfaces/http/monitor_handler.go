package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/application/monitor"
	"github.com/jhoicas/Trastienda-api/internal/domain"
)

// MonitorHandler expone las vistas de alerta del back-office.
type MonitorHandler struct {
	uc *monitor.UseCase
}

// NewMonitorHandler construye el handler.
func NewMonitorHandler(uc *monitor.UseCase) *MonitorHandler {
	return &MonitorHandler{uc: uc}
}

// LowStock godoc
// @Summary      Ítems con stock bajo el umbral
// @Description  Stock ascendente; empates por nombre ascendente para que la
//
//	lista sea estable entre consultas repetidas.
//
// @Tags         monitor
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (0 = sin límite)"
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/monitor/low-stock [get]
func (h *MonitorHandler) LowStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 0)
	list, err := h.uc.LowStock(c.Context(), companyID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// MostStocked godoc
// @Summary      Ítems con más stock
// @Tags         monitor
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas (0 = sin límite)"
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/monitor/most-stocked [get]
func (h *MonitorHandler) MostStocked(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 0)
	list, err := h.uc.MostStocked(c.Context(), companyID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// CashRisk godoc
// @Summary      Riesgo de efectivo de un cajón
// @Description  Compara el saldo actual del cajón contra el techo configurado.
// @Tags         monitor
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Drawer ID"
// @Success      200  {object}  dto.CashRiskDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/monitor/cash-risk/{id} [get]
func (h *MonitorHandler) CashRisk(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.CashRisk(c.Context(), companyID, c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cajón no encontrado"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
