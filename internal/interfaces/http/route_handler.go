package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
)

// RouteHandler rutas de recolección y sus puntos.
type RouteHandler struct {
	uc   *usecase.RouteUseCase
	errs errorMapper
}

// NewRouteHandler construye el handler.
func NewRouteHandler(uc *usecase.RouteUseCase, errs errorMapper) *RouteHandler {
	return &RouteHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar rutas
// @Tags         routes
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "búsqueda por nombre"
// @Success      200  {array}  dto.RouteResponse
// @Router       /api/routes [get]
func (h *RouteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ruta con sus puntos
// @Tags         routes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RouteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/routes/{id} [get]
func (h *RouteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ruta
// @Description  La ruta y sus puntos se guardan en una sola transacción.
// @Tags         routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRouteRequest  true  "ruta"
// @Success      201  {object}  dto.RouteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/routes [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una ruta
// @Description  Solo el recolector asignado o un administrador.
// @Tags         routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.StatusUpdateRequest  true  "estado"
// @Success      200  {object}  dto.RouteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/routes/{id}/status [patch]
func (h *RouteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdatePointStatus godoc
// @Summary      Cambiar estado de un punto
// @Tags         routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        pointId  path  string                   true  "ID del punto"
// @Param        body     body  dto.StatusUpdateRequest  true  "estado"
// @Success      200  {object}  dto.RoutePointResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/routes/points/{pointId}/status [patch]
func (h *RouteHandler) UpdatePointStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePointStatus(c.UserContext(), GetPrincipal(c), c.Params("pointId"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
