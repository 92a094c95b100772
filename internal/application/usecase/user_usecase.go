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

// UserUseCase aplica reglas de negocio para usuarios de una empresa.
type UserUseCase struct {
	repos repository.Repos
	tx    TxRunner
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repos repository.Repos, tx TxRunner) *UserUseCase {
	return &UserUseCase{repos: repos, tx: tx}
}

// Create crea un usuario si queda cupo para su rol. El conteo y el alta corren en una
// transacción que bloquea la fila de la empresa, así dos altas simultáneas no superan el cupo.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.Can(p, access.UserCreate); err != nil {
		return nil, err
	}
	companyID, err := access.WriteCompany(p, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if !entity.IsCompanyRole(in.Role) {
		return nil, domain.NewValidationError("rol inválido", "role")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	perms := in.Permissions
	if perms == nil {
		perms = []string{}
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		Permissions:  perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		company, err := r.Companies.GetForUpdate(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrNotFound
		}
		if err := uc.checkSeat(ctx, r, company, user.Role); err != nil {
			return err
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	out := UserToResponse(user)
	return &out, nil
}

func (uc *UserUseCase) checkSeat(ctx context.Context, r repository.Repos, company *entity.Company, role string) error {
	count, err := r.Users.CountByRole(ctx, company.ID, role)
	if err != nil {
		return err
	}
	return access.CheckSeat(company, role, count)
}

// List lista usuarios. Admin: su empresa; superadmin: todas o companyID; el resto solo se ve a sí mismo.
func (uc *UserUseCase) List(ctx context.Context, p access.Principal, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	scope, err := access.ListScope(p, access.UserRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Users.List(ctx, scope.ForCompany(companyID), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, UserToResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene un usuario visible para el principal.
func (uc *UserUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.UserResponse, error) {
	scope, err := access.ListScope(p, access.UserRead)
	if err != nil {
		return nil, err
	}
	u, err := uc.repos.Users.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := UserToResponse(u)
	return &out, nil
}

// Update actualiza un usuario. Cualquiera edita su propio nombre, email y contraseña;
// editar a otros o cambiar rol, estado o permisos requiere ser admin. Un cambio de rol
// vuelve a validar el cupo del rol nuevo.
func (uc *UserUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	self := id == p.UserID
	if !self || in.Role != nil || in.Status != nil || in.Permissions != nil {
		if err := access.Can(p, access.UserManage); err != nil {
			return nil, err
		}
	}
	scope := access.TenantScope(p)
	var out dto.UserResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		u, err := r.Users.GetByID(ctx, scope, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		if in.Role != nil && *in.Role != u.Role {
			if u.CompanyID == "" {
				return domain.NewValidationError("el superadmin no tiene rol de empresa", "role")
			}
			company, err := r.Companies.GetForUpdate(ctx, u.CompanyID)
			if err != nil {
				return err
			}
			if company == nil {
				return domain.ErrNotFound
			}
			if err := uc.checkSeat(ctx, r, company, *in.Role); err != nil {
				return err
			}
			u.Role = *in.Role
		}
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Email != nil {
			u.Email = NormalizeEmail(*in.Email)
		}
		if in.Password != nil {
			hash, err := HashPassword(*in.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
		}
		if in.Status != nil {
			u.Status = *in.Status
		}
		if in.Permissions != nil {
			u.Permissions = *in.Permissions
		}
		u.UpdatedAt = time.Now()
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		out = UserToResponse(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un usuario de la empresa. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.UserManage); err != nil {
		return err
	}
	if id == p.UserID {
		return domain.NewConflictError("You can't delete your own user")
	}
	u, err := uc.repos.Users.GetByID(ctx, access.TenantScope(p), id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Users.Delete(ctx, u.CompanyID, u.ID)
}
