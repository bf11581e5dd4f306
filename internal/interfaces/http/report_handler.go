package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/analytics"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
)

// ReportHandler reporte personal de recolecciones.
type ReportHandler struct {
	uc   *analytics.ReportUseCase
	errs errorMapper
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, errs errorMapper) *ReportHandler {
	return &ReportHandler{uc: uc, errs: errs}
}

// Mine godoc
// @Summary      Mis recolecciones
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period         query  string  false  "ultimo-mes, ultimos-3-meses, ultimo-ano"
// @Param        waste_type_id  query  string  false  "tipo de residuo"
// @Success      200  {array}  dto.ReportEntry
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/mine [get]
func (h *ReportHandler) Mine(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Mine(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// MineStats godoc
// @Summary      Estadísticas de mis recolecciones
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period         query  string  false  "ultimo-mes, ultimos-3-meses, ultimo-ano"
// @Param        waste_type_id  query  string  false  "tipo de residuo"
// @Success      200  {object}  dto.ReportStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/mine/stats [get]
func (h *ReportHandler) MineStats(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.MineStats(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// MinePDF godoc
// @Summary      Descargar mi reporte en PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        period         query  string  false  "ultimo-mes, ultimos-3-meses, ultimo-ano"
// @Param        waste_type_id  query  string  false  "tipo de residuo"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/mine/pdf [get]
func (h *ReportHandler) MinePDF(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	pdf, err := h.uc.MinePDF(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	name := "reporte-recolecciones"
	if in.Period != "" {
		name += "-" + in.Period
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, name))
	return c.Send(pdf)
}
