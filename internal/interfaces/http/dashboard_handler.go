package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ProjectStatus devuelve la cantidad de proyectos por estado, en el orden fijo
// Planned, Active, Completed, On Hold.
// GET /api/dashboard/project-status
func (h *DashboardHandler) ProjectStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ProjectStatus(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// TaskStatus devuelve la cantidad de tareas por estado (Pending, In Progress, Completed).
// GET /api/dashboard/task-status
func (h *DashboardHandler) TaskStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.TaskStatus(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetSummary ambos conteos en una sola respuesta; las consultas corren en paralelo.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Summary(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
