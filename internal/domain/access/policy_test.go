package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "company-a"
	companyB = "company-b"
)

func principal(role string, perms ...string) Principal {
	p := Principal{UserID: "u-" + role, Email: role + "@acme.test", Role: role, CompanyID: companyA, Permissions: perms}
	if role == entity.RoleSuperadmin {
		p.CompanyID = ""
	}
	return p
}

func requireDenied(t *testing.T, err error, reason string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden), "toda denegación debe ser ErrForbidden")
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, reason, denied.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Can
// ──────────────────────────────────────────────────────────────────────────────

func TestCan_EmpresasSoloSuperadmin(t *testing.T) {
	for _, a := range []Action{CompanyCreate, CompanyList, CompanyUpdate, CompanyDelete, UserToggle} {
		assert.NoError(t, Can(principal(entity.RoleSuperadmin), a), a)
		requireDenied(t, Can(principal(entity.RoleAdmin), a), ReasonSuperadminOnly)
		requireDenied(t, Can(principal(entity.RoleManager, PermCreateProjects), a), ReasonSuperadminOnly)
	}
}

func TestCan_PlanSoloAdminOSuperadmin(t *testing.T) {
	assert.NoError(t, Can(principal(entity.RoleSuperadmin), CompanyPlan))
	assert.NoError(t, Can(principal(entity.RoleAdmin), CompanyPlan))
	requireDenied(t, Can(principal(entity.RoleManager), CompanyPlan), ReasonAdminOnly)
}

func TestCan_ProyectoCrearRequierePermiso(t *testing.T) {
	requireDenied(t, Can(principal(entity.RoleUser), ProjectCreate), ReasonPermissionRequired)
	assert.NoError(t, Can(principal(entity.RoleUser, PermCreateProjects), ProjectCreate))
	assert.NoError(t, Can(principal(entity.RoleAdmin), ProjectCreate), "admin no necesita permisos")
}

func TestCan_PermisoSensibleAMayusculas(t *testing.T) {
	err := Can(principal(entity.RoleManager, "create projects"), ProjectCreate)
	requireDenied(t, err, ReasonPermissionRequired)

	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, PermCreateProjects, denied.Detail)
}

func TestCan_PresupuestosUnPermisoPorAccion(t *testing.T) {
	p := principal(entity.RoleManager, PermEditBudgets)
	assert.NoError(t, Can(p, BudgetEdit))
	requireDenied(t, Can(p, BudgetCreate), ReasonPermissionRequired)
	requireDenied(t, Can(p, BudgetDelete), ReasonPermissionRequired)
	assert.NoError(t, Can(p, BudgetRead))
}

func TestCan_BorrarTareaSinEscapePorPermiso(t *testing.T) {
	p := principal(entity.RoleManager, PermAssignTasks)
	assert.NoError(t, Can(p, TaskCreate))
	assert.NoError(t, Can(p, TaskEdit))
	requireDenied(t, Can(p, TaskDelete), ReasonAdminOnly)
	assert.NoError(t, Can(principal(entity.RoleAdmin), TaskDelete))
}

func TestCan_RecursosConCualquieraDeLosPermisos(t *testing.T) {
	assert.NoError(t, Can(principal(entity.RoleUser, PermViewResources), ResourceRead))
	assert.NoError(t, Can(principal(entity.RoleUser, PermManageTeamResources), ResourceRead))
	requireDenied(t, Can(principal(entity.RoleUser), ResourceRead), ReasonPermissionRequired)
	requireDenied(t, Can(principal(entity.RoleUser, PermViewResources), ResourceManage), ReasonPermissionRequired)
}

func TestCan_SinEmpresaSeDeniega(t *testing.T) {
	p := principal(entity.RoleAdmin)
	p.CompanyID = ""
	requireDenied(t, Can(p, ProjectRead), ReasonNoCompany)
}

func TestCan_AccionDesconocida(t *testing.T) {
	requireDenied(t, Can(principal(entity.RoleSuperadmin), Action("nada")), ReasonUnknownAction)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListScope
// ──────────────────────────────────────────────────────────────────────────────

func TestListScope_ProyectosPorRol(t *testing.T) {
	s, err := ListScope(principal(entity.RoleAdmin), ProjectRead)
	require.NoError(t, err)
	assert.Equal(t, Scope{CompanyID: companyA}, s)

	s, err = ListScope(principal(entity.RoleManager), ProjectRead)
	require.NoError(t, err)
	assert.False(t, s.IsNarrowed(), "manager ve todos los proyectos de la empresa")

	s, err = ListScope(principal(entity.RoleUser), ProjectRead)
	require.NoError(t, err)
	assert.Equal(t, "u-user", s.AssigneeID)
	assert.Equal(t, companyA, s.CompanyID)
}

func TestListScope_TareasSinAssignTasksSeReducen(t *testing.T) {
	s, err := ListScope(principal(entity.RoleManager), TaskRead)
	require.NoError(t, err)
	assert.True(t, s.IsNarrowed())

	s, err = ListScope(principal(entity.RoleManager, PermAssignTasks), TaskRead)
	require.NoError(t, err)
	assert.False(t, s.IsNarrowed())
}

func TestListScope_RecursosSinPermisoSeDeniega(t *testing.T) {
	_, err := ListScope(principal(entity.RoleUser), ResourceRead)
	requireDenied(t, err, ReasonPermissionRequired)

	s, err := ListScope(principal(entity.RoleUser, PermViewResources), ResourceRead)
	require.NoError(t, err)
	assert.True(t, s.IsNarrowed())
}

func TestListScope_SuperadminVeTodasLasEmpresas(t *testing.T) {
	s, err := ListScope(principal(entity.RoleSuperadmin), ProjectRead)
	require.NoError(t, err)
	assert.True(t, s.AllCompanies)
	assert.True(t, s.Allows(companyB))
}
