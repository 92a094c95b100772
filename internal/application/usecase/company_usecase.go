package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// CompanyUseCase administra empresas (solo superadmin) y el cambio de estado de sus usuarios.
type CompanyUseCase struct {
	repos repository.Repos
	tx    TxRunner
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repos repository.Repos, tx TxRunner) *CompanyUseCase {
	return &CompanyUseCase{repos: repos, tx: tx}
}

// Create crea la empresa y su admin principal en una sola transacción.
// Los cupos se recortan al tope del plan.
func (uc *CompanyUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateCompanyRequest) (*dto.CreateCompanyResponse, error) {
	if err := access.Can(p, access.CompanyCreate); err != nil {
		return nil, err
	}
	plan, err := access.NormalizePlan(in.Plan)
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.AdminPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	adminEmail := NormalizeEmail(in.AdminEmail)
	company := &entity.Company{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Plan:       plan,
		AdminName:  in.AdminName,
		AdminEmail: adminEmail,
		Caps: access.EffectiveCaps(plan, entity.SeatCaps{
			MaxAdmins:   in.MaxAdmins,
			MaxManagers: in.MaxManagers,
			MaxUsers:    in.MaxUsers,
		}),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Name:         in.AdminName,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		Permissions:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		return r.Users.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateCompanyResponse{Company: companyToResponse(company), Admin: UserToResponse(admin)}, nil
}

// List lista empresas. Sin includeInactive solo devuelve las activas.
func (uc *CompanyUseCase) List(ctx context.Context, p access.Principal, includeInactive bool, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if err := access.Can(p, access.CompanyList); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Companies.List(ctx, includeInactive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, companyToResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene una empresa.
func (uc *CompanyUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.CompanyResponse, error) {
	if err := access.Can(p, access.CompanyList); err != nil {
		return nil, err
	}
	c, err := uc.repos.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := companyToResponse(c)
	return &out, nil
}

// Plan devuelve el plan de la empresa con cupos y ocupación. Un admin solo ve su empresa.
func (uc *CompanyUseCase) Plan(ctx context.Context, p access.Principal, companyID string) (*dto.CompanyPlanResponse, error) {
	if err := access.Can(p, access.CompanyPlan); err != nil {
		return nil, err
	}
	if err := access.TenantScope(p).Visible(companyID); err != nil {
		return nil, err
	}
	c, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	ceiling, _ := access.PlanCeiling(c.Plan)
	caps := access.EffectiveCaps(c.Plan, c.Caps)
	out := &dto.CompanyPlanResponse{CompanyID: c.ID, Plan: c.Plan}
	for _, seat := range []struct {
		role string
		dst  *dto.SeatUsage
	}{
		{entity.RoleAdmin, &out.Admins},
		{entity.RoleManager, &out.Managers},
		{entity.RoleUser, &out.Users},
	} {
		used, err := uc.repos.Users.CountByRole(ctx, c.ID, seat.role)
		if err != nil {
			return nil, err
		}
		*seat.dst = dto.SeatUsage{Limit: caps.ForRole(seat.role), Ceiling: ceiling.ForRole(seat.role), Used: used}
	}
	return out, nil
}

// Update actualiza una empresa. Si cambia el plan, los cupos no enviados toman el tope del nuevo plan;
// en cualquier caso se recortan al tope. Los usuarios que ya exceden un cupo nuevo se conservan.
func (uc *CompanyUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := access.Can(p, access.CompanyUpdate); err != nil {
		return nil, err
	}
	var out dto.CompanyResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		c, err := r.Companies.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		requested := c.Caps
		if in.Plan != nil {
			plan, err := access.NormalizePlan(*in.Plan)
			if err != nil {
				return err
			}
			if plan != c.Plan {
				requested = entity.SeatCaps{}
			}
			c.Plan = plan
		}
		if in.MaxAdmins != nil {
			requested.MaxAdmins = *in.MaxAdmins
		}
		if in.MaxManagers != nil {
			requested.MaxManagers = *in.MaxManagers
		}
		if in.MaxUsers != nil {
			requested.MaxUsers = *in.MaxUsers
		}
		c.Caps = access.EffectiveCaps(c.Plan, requested)
		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.AdminName != nil {
			c.AdminName = *in.AdminName
		}
		if in.AdminEmail != nil {
			c.AdminEmail = NormalizeEmail(*in.AdminEmail)
		}
		if in.IsActive != nil {
			c.IsActive = *in.IsActive
		}
		c.UpdatedAt = time.Now()
		if err := r.Companies.Update(ctx, c); err != nil {
			return err
		}
		out = companyToResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina la empresa y, por cascada en la BD, todos sus registros.
func (uc *CompanyUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.CompanyDelete); err != nil {
		return err
	}
	return uc.repos.Companies.Delete(ctx, id)
}

// ToggleUserStatus cambia el estado de un usuario de la empresa. Si es el admin principal,
// el mismo estado se aplica a todos los demás usuarios de la empresa en la misma transacción:
// o se aplican ambos cambios o ninguno.
func (uc *CompanyUseCase) ToggleUserStatus(ctx context.Context, p access.Principal, companyID, userID string, in dto.ToggleUserStatusRequest) (*dto.ToggleUserStatusResponse, error) {
	if err := access.Can(p, access.UserToggle); err != nil {
		return nil, err
	}
	if in.Status != entity.UserStatusActive && in.Status != entity.UserStatusInactive {
		return nil, domain.NewValidationError("Status must be ACTIVE or INACTIVE", "status")
	}
	var out dto.ToggleUserStatusResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		company, err := r.Companies.GetForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		user, err := r.Users.GetByID(ctx, access.Scope{CompanyID: company.ID}, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if err := r.Users.UpdateStatus(ctx, company.ID, user.ID, in.Status); err != nil {
			return err
		}
		user.Status = in.Status
		out.User = UserToResponse(user)
		if !company.IsPrimaryAdmin(user) {
			return nil
		}
		n, err := r.Users.UpdateStatusExceptUser(ctx, company.ID, user.ID, in.Status)
		if err != nil {
			return err
		}
		out.Cascaded = true
		out.AffectedUsers = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
