package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
)

// CriterionHandler directorio de criterios y su asociación con el catálogo.
type CriterionHandler struct {
	uc   *usecase.CriterionUseCase
	errs errorMapper
}

// NewCriterionHandler construye el handler.
func NewCriterionHandler(uc *usecase.CriterionUseCase, errs errorMapper) *CriterionHandler {
	return &CriterionHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar criterios
// @Tags         criteria
// @Produce      json
// @Param        data_type  query  string  false  "texto, numero, booleano, seleccion"
// @Param        status     query  string  false  "activo, inactivo"
// @Param        search     query  string  false  "búsqueda"
// @Success      200  {array}  dto.CriterionResponse
// @Router       /api/criteria [get]
func (h *CriterionHandler) List(c *fiber.Ctx) error {
	var in dto.CriterionListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener criterio
// @Tags         criteria
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CriterionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/criteria/{id} [get]
func (h *CriterionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear criterio
// @Tags         criteria
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CriterionRequest  true  "criterio"
// @Success      201  {object}  dto.CriterionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/criteria [post]
func (h *CriterionHandler) Create(c *fiber.Ctx) error {
	var in dto.CriterionRequest
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
// @Summary      Editar criterio
// @Tags         criteria
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.CriterionRequest  true  "criterio"
// @Success      200  {object}  dto.CriterionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/criteria/{id} [put]
func (h *CriterionHandler) Update(c *fiber.Ctx) error {
	var in dto.CriterionRequest
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
// @Summary      Eliminar criterio
// @Tags         criteria
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/criteria/{id} [delete]
func (h *CriterionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Associate godoc
// @Summary      Asociar criterio a tipo de residuo
// @Tags         criteria
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssociateCriterionRequest  true  "asociación"
// @Success      201  {object}  dto.WasteTypeCriterionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/criteria/associate [post]
func (h *CriterionHandler) Associate(c *fiber.Ctx) error {
	var in dto.AssociateCriterionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Associate(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Dissociate godoc
// @Summary      Desasociar criterio
// @Tags         criteria
// @Security     BearerAuth
// @Param        wasteTypeId  path  string  true  "ID del tipo de residuo"
// @Param        criterionId  path  string  true  "ID del criterio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/criteria/associate/{wasteTypeId}/{criterionId} [delete]
func (h *CriterionHandler) Dissociate(c *fiber.Ctx) error {
	if err := h.uc.Dissociate(c.UserContext(), c.Params("wasteTypeId"), c.Params("criterionId")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
