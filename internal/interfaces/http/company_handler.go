package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/metrics"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa con su admin principal
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa y del admin"
// @Success      201   {object}  dto.CreateCompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var in dto.CreateCompanyRequest
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
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        all     query  bool  false  "Incluir inactivas"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), p, c.QueryBool("all", false), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "companyId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), p, companyID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Plan godoc
// @Summary      Plan vigente y ocupación de cupos
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyPlanResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/plan/{companyId} [get]
func (h *CompanyHandler) Plan(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "companyId")
	if err != nil {
		return err
	}
	out, err := h.uc.Plan(c.UserContext(), p, companyID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa (plan, cupos, estado)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                    true  "ID de la empresa"
// @Param        body       body  dto.UpdateCompanyRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "companyId")
	if err != nil {
		return err
	}
	var in dto.UpdateCompanyRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), p, companyID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa y todos sus datos
// @Tags         companies
// @Security     BearerAuth
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "companyId")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), p, companyID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleUserStatus godoc
// @Summary      Activar o desactivar un usuario de la empresa
// @Description  Si el usuario es el admin principal, el nuevo estado se aplica a todos los usuarios de la empresa.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  path  string                       true  "ID de la empresa"
// @Param        userId     path  string                       true  "ID del usuario"
// @Param        body       body  dto.ToggleUserStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.ToggleUserStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/user/{userId} [put]
func (h *CompanyHandler) ToggleUserStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "companyId")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	var in dto.ToggleUserStatusRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ToggleUserStatus(c.UserContext(), p, companyID, userID, in)
	if err != nil {
		return err
	}
	if out.Cascaded {
		metrics.StatusCascadesTotal.WithLabelValues(in.Status).Inc()
		metrics.CascadedUsersTotal.Add(float64(out.AffectedUsers))
	}
	return c.JSON(out)
}

func pageFrom(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
}
