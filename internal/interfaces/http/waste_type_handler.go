package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
)

// WasteTypeHandler catálogo de tipos de residuo.
type WasteTypeHandler struct {
	uc   *usecase.WasteTypeUseCase
	errs errorMapper
}

// NewWasteTypeHandler construye el handler.
func NewWasteTypeHandler(uc *usecase.WasteTypeUseCase, errs errorMapper) *WasteTypeHandler {
	return &WasteTypeHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar tipos de residuo
// @Tags         waste-types
// @Produce      json
// @Param        category  query  string  false  "categoría"
// @Param        status    query  string  false  "activo, inactivo"
// @Param        search    query  string  false  "búsqueda por nombre o descripción"
// @Success      200  {array}  dto.WasteTypeResponse
// @Router       /api/waste-types [get]
func (h *WasteTypeHandler) List(c *fiber.Ctx) error {
	var in dto.WasteTypeListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías del catálogo
// @Tags         waste-types
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/waste-types/categories [get]
func (h *WasteTypeHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del catálogo
// @Tags         waste-types
// @Produce      json
// @Success      200  {object}  dto.WasteTypeStatsResponse
// @Router       /api/waste-types/stats [get]
func (h *WasteTypeHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de residuo
// @Tags         waste-types
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.WasteTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste-types/{id} [get]
func (h *WasteTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Criteria godoc
// @Summary      Criterios asociados
// @Tags         waste-types
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {array}  dto.WasteTypeCriterionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste-types/{id}/criteria [get]
func (h *WasteTypeHandler) Criteria(c *fiber.Ctx) error {
	out, err := h.uc.Criteria(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tipo de residuo
// @Tags         waste-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.WasteTypeRequest  true  "tipo de residuo"
// @Success      201  {object}  dto.WasteTypeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waste-types [post]
func (h *WasteTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.WasteTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar tipo de residuo
// @Tags         waste-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.WasteTypeRequest  true  "tipo de residuo"
// @Success      200  {object}  dto.WasteTypeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste-types/{id} [put]
func (h *WasteTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.WasteTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de residuo
// @Description  Falla con 409 si tiene criterios asociados.
// @Tags         waste-types
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/waste-types/{id} [delete]
func (h *WasteTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
