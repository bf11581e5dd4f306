package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
)

// CollectionRequestHandler solicitudes de recogida.
type CollectionRequestHandler struct {
	uc   *usecase.CollectionRequestUseCase
	errs errorMapper
}

// NewCollectionRequestHandler construye el handler.
func NewCollectionRequestHandler(uc *usecase.CollectionRequestUseCase, errs errorMapper) *CollectionRequestHandler {
	return &CollectionRequestHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear solicitud de recogida
// @Description  La solicitud queda a nombre del usuario autenticado.
// @Tags         collection-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCollectionRequestRequest  true  "solicitud"
// @Success      201  {object}  dto.CollectionRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/collection-requests [post]
func (h *CollectionRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollectionRequestRequest
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
// @Summary      Listar solicitudes
// @Description  Las propias; el administrador ve todas.
// @Tags         collection-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pendiente, aprobada, rechazada"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.CollectionRequestResponse
// @Router       /api/collection-requests [get]
func (h *CollectionRequestHandler) List(c *fiber.Ctx) error {
	var in dto.ListCollectionRequestsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una solicitud
// @Tags         collection-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID"
// @Param        body  body  dto.StatusUpdateRequest  true  "estado"
// @Success      200  {object}  dto.CollectionRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collection-requests/{id}/status [patch]
func (h *CollectionRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
