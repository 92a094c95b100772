package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
)

// RiskHandler maneja las peticiones HTTP para riesgos; cada cambio queda en la bitácora.
type RiskHandler struct {
	uc *usecase.RiskUseCase
}

// NewRiskHandler construye el handler inyectando el caso de uso.
func NewRiskHandler(uc *usecase.RiskUseCase) *RiskHandler {
	return &RiskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear riesgo
// @Tags         risks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRiskRequest  true  "Datos"
// @Success      201   {object}  entity.Risk
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/risks [post]
func (h *RiskHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in dto.CreateRiskRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), p, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar riesgos
// @Tags         risks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  query  string  false  "Filtrar por proyecto"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RiskListResponse
// @Router       /api/risks [get]
func (h *RiskHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	projectID, err := queryID(c, "projectId")
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), p, projectID, pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener riesgo
// @Tags         risks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RiskDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/risks/{id} [get]
func (h *RiskHandler) GetByID(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar riesgo
// @Tags         risks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID"
// @Param        body  body  dto.UpdateRiskRequest  true  "Campos a modificar"
// @Success      200  {object}  entity.Risk
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/risks/{id} [put]
func (h *RiskHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateRiskRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), p, id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar riesgo
// @Description  Borrado lógico; registra la acción en la bitácora.
// @Tags         risks
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/risks/{id} [delete]
func (h *RiskHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), p, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
