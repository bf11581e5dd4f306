package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
)

// CollectionHandler recolecciones registradas.
type CollectionHandler struct {
	uc   *usecase.CollectionUseCase
	errs errorMapper
}

// NewCollectionHandler construye el handler.
func NewCollectionHandler(uc *usecase.CollectionUseCase, errs errorMapper) *CollectionHandler {
	return &CollectionHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Registrar recolección
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCollectionRequest  true  "recolección"
// @Success      201  {object}  dto.CollectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/collections [post]
func (h *CollectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar recolecciones visibles
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        status         query  string  false  "pendiente, en_proceso, completada"
// @Param        waste_type_id  query  string  false  "tipo de residuo"
// @Success      200  {array}  dto.CollectionResponse
// @Router       /api/collections [get]
func (h *CollectionHandler) List(c *fiber.Ctx) error {
	var in dto.ListCollectionsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener recolección
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CollectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collections/{id} [get]
func (h *CollectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una recolección
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.StatusUpdateRequest  true  "estado"
// @Success      200  {object}  dto.CollectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collections/{id}/status [patch]
func (h *CollectionHandler) UpdateStatus(c *fiber.Ctx) error {
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

// AssignRoute godoc
// @Summary      Asignar ruta a una recolección
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID"
// @Param        body  body  dto.AssignRouteRequest  true  "ruta"
// @Success      200  {object}  dto.CollectionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/collections/{id}/route [post]
func (h *CollectionHandler) AssignRoute(c *fiber.Ctx) error {
	var in dto.AssignRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignRoute(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
