package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trastienda-api/internal/application/cashflow"
	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/ledger"
)

// Formato de fecha de negocio en query params.
const dayLayout = "2006-01-02"

// parseDay interpreta un query param de fecha; vacío devuelve fallback.
func parseDay(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return ledger.DateOf(fallback), nil
	}
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return ledger.DateOf(t), nil
}

// CashflowHandler maneja movimientos de caja, cajones y consultas de saldo.
type CashflowHandler struct {
	record  *cashflow.RecordMovementUseCase
	balance *cashflow.BalanceUseCase
	drawers *cashflow.DrawerUseCase
}

// NewCashflowHandler construye el handler.
func NewCashflowHandler(
	record *cashflow.RecordMovementUseCase,
	balance *cashflow.BalanceUseCase,
	drawers *cashflow.DrawerUseCase,
) *CashflowHandler {
	return &CashflowHandler{record: record, balance: balance, drawers: drawers}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de caja
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordCashMovementRequest  true  "drawer_id, kind (CASH_IN|CASH_OUT), amount"
// @Success      201   {object}  dto.CashMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cash/movements [post]
func (h *CashflowHandler) RecordMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordCashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.record.Record(companyID, userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cajón o clasificación no encontrado"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un cajón sobre un rango de fechas
// @Description  Devuelve arrastre, entradas, salidas y saldo del rango [from, to].
//
//	Un cajón sin movimientos responde en ceros, no 404.
//
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "Drawer ID"
// @Param        from  query  string  false  "Fecha inicio (YYYY-MM-DD). Vacío = hoy."
// @Param        to    query  string  false  "Fecha fin (YYYY-MM-DD). Vacío = hoy."
// @Success      200   {object}  dto.DrawerBalanceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/cash/drawers/{id}/balance [get]
func (h *CashflowHandler) GetBalance(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	drawerID := c.Params("id")
	now := time.Now()
	from, err := parseDay(c.Query("from"), now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: formato esperado YYYY-MM-DD"})
	}
	to, err := parseDay(c.Query("to"), now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: formato esperado YYYY-MM-DD"})
	}
	out, err := h.balance.GetRangeBalance(companyID, drawerID, from, to)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rango es inválido (to < from)"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateDrawer godoc
// @Summary      Crear un cajón de caja
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDrawerRequest  true  "name"
// @Success      201   {object}  dto.DrawerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash/drawers [post]
func (h *CashflowHandler) CreateDrawer(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateDrawerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.drawers.Create(companyID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cajón con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDrawers godoc
// @Summary      Listar cajones de la empresa
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DrawerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cash/drawers [get]
func (h *CashflowHandler) ListDrawers(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.drawers.List(companyID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "drawers": list})
}
