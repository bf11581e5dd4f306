package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/analytics"
)

// DashboardHandler indicadores del dashboard.
type DashboardHandler struct {
	uc   *analytics.DashboardUseCase
	errs errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, errs errorMapper) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// Stats godoc
// @Summary      Indicadores globales
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Personal godoc
// @Summary      Indicadores del usuario autenticado
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PersonalDashboardResponse
// @Router       /api/dashboard/personal [get]
func (h *DashboardHandler) Personal(c *fiber.Ctx) error {
	out, err := h.uc.Personal(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
