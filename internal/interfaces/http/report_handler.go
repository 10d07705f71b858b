package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trastienda-api/internal/application/dto"
	"github.com/jhoicas/Trastienda-api/internal/application/report"
)

// ReportHandler expone el cierre diario de caja.
type ReportHandler struct {
	dailyClose *report.DailyCloseUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dailyClose *report.DailyCloseUseCase) *ReportHandler {
	return &ReportHandler{dailyClose: dailyClose}
}

// DailyClose godoc
// @Summary      Cierre diario de caja
// @Description  Resumen por cajón del día: arrastre, entradas, salidas y
//
//	cierre. Con format=pdf devuelve el documento renderizado.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        day     query  string  false  "Día (YYYY-MM-DD). Vacío = hoy."
// @Param        format  query  string  false  "json (default) | pdf"
// @Success      200  {object}  dto.DailyCloseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily-close [get]
func (h *ReportHandler) DailyClose(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	day, err := parseDay(c.Query("day"), time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day: formato esperado YYYY-MM-DD"})
	}

	if c.Query("format") == "pdf" {
		pdfBytes, err := h.dailyClose.GeneratePDF(c.Context(), companyID, day)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="cierre-`+day.Format(dayLayout)+`.pdf"`)
		return c.Send(pdfBytes)
	}

	out, err := h.dailyClose.Build(companyID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
