package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

func TestRiesgo_CicloDeVidaRegistraActividad(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	member := f.addUser(t, f.a, entity.RoleUser)

	risk, err := f.risks.Create(f.ctx, member, dto.CreateRiskRequest{
		ProjectID: pr.ID, Description: "proveedor", SeverityLevel: "HIGH",
	})
	require.NoError(t, err)
	assert.Equal(t, "OPEN", risk.Status)

	_, err = f.risks.Update(f.ctx, member, risk.ID, dto.UpdateRiskRequest{SeverityLevel: strPtr("LOW")})
	require.NoError(t, err)
	require.NoError(t, f.risks.Delete(f.ctx, member, risk.ID))

	_, err = f.risks.GetByID(f.ctx, member, risk.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	logs, err := f.activity.List(f.ctx, admin, repository.ActivityFilter{EntityID: risk.ID}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, logs.Items, 3)
	assert.Equal(t, usecase.ActionRiskDeleted, logs.Items[0].Action)
	assert.Equal(t, usecase.ActionRiskUpdated, logs.Items[1].Action)
	assert.Equal(t, usecase.ActionRiskCreated, logs.Items[2].Action)
	assert.Nil(t, logs.Items[2].OldValue)

	var before, after entity.Risk
	require.NoError(t, json.Unmarshal(logs.Items[1].OldValue, &before))
	require.NoError(t, json.Unmarshal(logs.Items[1].NewValue, &after))
	assert.Equal(t, "HIGH", before.SeverityLevel)
	assert.Equal(t, "LOW", after.SeverityLevel)

	var deleted entity.Risk
	require.NoError(t, json.Unmarshal(logs.Items[0].NewValue, &deleted))
	assert.Equal(t, entity.StatusDeleted, deleted.Status)
}

func TestRiesgo_OtraEmpresaNoExiste(t *testing.T) {
	f := newFixture(t)
	pr := f.addProject(t, adminOf(f.a), "acme")
	risk, err := f.risks.Create(f.ctx, adminOf(f.a), dto.CreateRiskRequest{ProjectID: pr.ID, Description: "d", SeverityLevel: "LOW"})
	require.NoError(t, err)

	_, err = f.risks.Update(f.ctx, adminOf(f.b), risk.ID, dto.UpdateRiskRequest{Description: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.risks.Create(f.ctx, adminOf(f.b), dto.CreateRiskRequest{ProjectID: pr.ID, Description: "d", SeverityLevel: "LOW"})
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)

	logs, err := f.activity.List(f.ctx, adminOf(f.b), repository.ActivityFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, logs.Items)
}

func TestPresupuesto_CicloDeVida(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	plain := f.addUser(t, f.a, entity.RoleManager)
	creator := f.addUser(t, f.a, entity.RoleManager, access.PermCreateBudgets, access.PermDeleteBudgets)

	req := dto.CreateBudgetRequest{
		ProjectID:       pr.ID,
		Category:        "Infra",
		AllocatedAmount: decimal.RequireFromString("1500.50"),
	}
	_, err := f.budgets.Create(f.ctx, plain, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	neg := req
	neg.SpentAmount = decimal.NewFromInt(-1)
	_, err = f.budgets.Create(f.ctx, creator, neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	budget, err := f.budgets.Create(f.ctx, creator, req)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(budget.AllocatedAmount))

	_, err = f.budgets.Update(f.ctx, creator, budget.ID, dto.UpdateBudgetRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden, "editar requiere Edit Budgets")

	require.NoError(t, f.budgets.Delete(f.ctx, creator, budget.ID))
	_, err = f.budgets.GetByID(f.ctx, admin, budget.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	logs, err := f.activity.List(f.ctx, admin, repository.ActivityFilter{EntityType: entity.EntityBudget}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, logs.Items, 2)
	assert.Equal(t, usecase.ActionBudgetDeleted, logs.Items[0].Action)
	assert.NotNil(t, logs.Items[0].OldValue)
	assert.Nil(t, logs.Items[0].NewValue)
}

func TestActividad_SuperadminVeTodasLasEmpresas(t *testing.T) {
	f := newFixture(t)
	for _, c := range []*dto.CreateCompanyResponse{f.a, f.b} {
		pr := f.addProject(t, adminOf(c), "p")
		_, err := f.risks.Create(f.ctx, adminOf(c), dto.CreateRiskRequest{ProjectID: pr.ID, Description: "d", SeverityLevel: "LOW"})
		require.NoError(t, err)
	}

	all, err := f.activity.List(f.ctx, superadmin, repository.ActivityFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	own, err := f.activity.List(f.ctx, adminOf(f.a), repository.ActivityFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, own.Items, 1)
}

func TestDashboard_Totales(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	user := f.addUser(t, f.a, entity.RoleUser)
	active := f.addProject(t, admin, "active")
	f.addProject(t, admin, "active 2")
	f.addProject(t, adminOf(f.b), "globex")
	f.addTask(t, admin, active.ID, user.UserID)
	f.addTask(t, admin, active.ID, "")

	summary, err := f.dashboard.Summary(f.ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, []dto.StatusCount{
		{Name: "Planned", Value: 0},
		{Name: "Active", Value: 2},
		{Name: "Completed", Value: 0},
		{Name: "On Hold", Value: 0},
	}, summary.Projects)
	assert.Equal(t, []dto.StatusCount{
		{Name: "Pending", Value: 2},
		{Name: "In Progress", Value: 0},
		{Name: "Completed", Value: 0},
	}, summary.Tasks)

	projects, err := f.dashboard.ProjectStatus(f.ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, projects[1].Value, "user solo cuenta proyectos con tareas suyas")

	tasks, err := f.dashboard.TaskStatus(f.ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, tasks[0].Value)
}
