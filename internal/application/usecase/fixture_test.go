package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/memory"
)

func init() {
	usecase.PasswordCost = bcrypt.MinCost
}

var superadmin = access.Principal{UserID: "root", Email: "root@proyectos.test", Role: entity.RoleSuperadmin}

var seq atomic.Int64

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@proyectos.test", prefix, seq.Add(1))
}

// fixture dos empresas (A en BASIC, B en PRO) sobre un store en memoria.
type fixture struct {
	ctx   context.Context
	store *memory.Store

	companies *usecase.CompanyUseCase
	users     *usecase.UserUseCase
	projects  *usecase.ProjectUseCase
	tasks     *usecase.TaskUseCase
	resources *usecase.ResourceUseCase
	risks     *usecase.RiskUseCase
	budgets   *usecase.BudgetUseCase
	activity  *usecase.ActivityUseCase
	dashboard *usecase.DashboardUseCase

	a, b *dto.CreateCompanyResponse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	f := &fixture{
		ctx:       context.Background(),
		store:     store,
		companies: usecase.NewCompanyUseCase(repos, store),
		users:     usecase.NewUserUseCase(repos, store),
		projects:  usecase.NewProjectUseCase(repos, store),
		tasks:     usecase.NewTaskUseCase(repos),
		resources: usecase.NewResourceUseCase(repos),
		risks:     usecase.NewRiskUseCase(repos, store),
		budgets:   usecase.NewBudgetUseCase(repos, store),
		activity:  usecase.NewActivityUseCase(repos.Activity),
		dashboard: usecase.NewDashboardUseCase(repos.Dashboard),
	}
	f.a = f.createCompany(t, "Acme", entity.PlanBasic)
	f.b = f.createCompany(t, "Globex", entity.PlanPro)
	return f
}

func (f *fixture) createCompany(t *testing.T, name, plan string) *dto.CreateCompanyResponse {
	t.Helper()
	out, err := f.companies.Create(f.ctx, superadmin, dto.CreateCompanyRequest{
		Name:          name,
		Plan:          plan,
		AdminName:     name + " Admin",
		AdminEmail:    uniqueEmail("admin"),
		AdminPassword: "secret1",
	})
	require.NoError(t, err)
	return out
}

func adminOf(c *dto.CreateCompanyResponse) access.Principal {
	return access.Principal{
		UserID:      c.Admin.ID,
		Email:       c.Admin.Email,
		Role:        entity.RoleAdmin,
		CompanyID:   c.Company.ID,
		Permissions: access.Permissions{},
	}
}

// addUser da de alta un usuario en la empresa y devuelve su principal.
func (f *fixture) addUser(t *testing.T, c *dto.CreateCompanyResponse, role string, perms ...string) access.Principal {
	t.Helper()
	u, err := f.users.Create(f.ctx, superadmin, dto.CreateUserRequest{
		CompanyID:   c.Company.ID,
		Name:        role + " user",
		Email:       uniqueEmail(role),
		Password:    "secret1",
		Role:        role,
		Permissions: perms,
	})
	require.NoError(t, err)
	return access.Principal{
		UserID:      u.ID,
		Email:       u.Email,
		Role:        role,
		CompanyID:   c.Company.ID,
		Permissions: access.Permissions(u.Permissions),
	}
}

func (f *fixture) addProject(t *testing.T, p access.Principal, name string) *dto.ProjectResponse {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pr, err := f.projects.Create(f.ctx, p, dto.CreateProjectRequest{
		Name:      name,
		StartDate: dto.NewDate(start),
		EndDate:   dto.NewDate(start.AddDate(0, 6, 0)),
		Status:    entity.ProjectStatusActive,
	})
	require.NoError(t, err)
	return pr
}

func (f *fixture) addTask(t *testing.T, p access.Principal, projectID, assignee string) *dto.TaskResponse {
	t.Helper()
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	task, err := f.tasks.Create(f.ctx, p, dto.CreateTaskRequest{
		ProjectID:  projectID,
		Title:      "tarea",
		AssignedTo: assignee,
		StartDate:  dto.NewDate(start),
		EndDate:    dto.NewDate(start.AddDate(0, 0, 7)),
	})
	require.NoError(t, err)
	return task
}
