package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// ActivityHandler expone la bitácora de cambios (solo lectura).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler de la bitácora.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora, más reciente primero
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        entityType  query  string  false  "Tipo de entidad (RISK, BUDGET)"
// @Param        entityId    query  string  false  "ID de la entidad"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ActivityLogListResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	entityID, err := queryID(c, "entityId")
	if err != nil {
		return err
	}
	return h.list(c, repository.ActivityFilter{
		EntityType: c.Query("entityType"),
		EntityID:   entityID,
	})
}

// ByEntity godoc
// @Summary      Historial de una entidad
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        entityType  path  string  true  "Tipo de entidad"
// @Param        entityId    path  string  true  "ID de la entidad"
// @Success      200  {object}  dto.ActivityLogListResponse
// @Router       /api/activity/{entityType}/{entityId} [get]
func (h *ActivityHandler) ByEntity(c *fiber.Ctx) error {
	entityID, err := pathID(c, "entityId")
	if err != nil {
		return err
	}
	return h.list(c, repository.ActivityFilter{
		EntityType: c.Params("entityType"),
		EntityID:   entityID,
	})
}

func (h *ActivityHandler) list(c *fiber.Ctx, f repository.ActivityFilter) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), p, f, pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
