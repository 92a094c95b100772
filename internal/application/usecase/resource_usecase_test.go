package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

func resourceRequest(projectID string) dto.CreateResourceRequest {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateResourceRequest{
		ProjectID:       projectID,
		ResourceType:    "Developer",
		AllocationStart: dto.NewDate(start),
		AllocationEnd:   dto.NewDate(start.AddDate(0, 2, 0)),
		UtilizationRate: decimal.NewFromFloat(0.75),
	}
}

func TestCrearRecurso_ValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")

	out, err := f.resources.Create(f.ctx, admin, resourceRequest(pr.ID))
	require.NoError(t, err)
	assert.Equal(t, "acme", out.AssignedProject)
	assert.Equal(t, "ACTIVE", out.Status)
	assert.True(t, decimal.NewFromFloat(0.75).Equal(out.UtilizationRate))

	viewer := f.addUser(t, f.a, entity.RoleManager, access.PermViewResources)
	_, err = f.resources.Create(f.ctx, viewer, resourceRequest(pr.ID))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	foreign := f.addProject(t, adminOf(f.b), "globex")
	_, err = f.resources.Create(f.ctx, admin, resourceRequest(foreign.ID))
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)
}

func TestListarRecursos_Visibilidad(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	mine := f.addProject(t, admin, "mine")
	other := f.addProject(t, admin, "other")
	viewer := f.addUser(t, f.a, entity.RoleUser, access.PermViewResources)
	plain := f.addUser(t, f.a, entity.RoleUser)
	f.addTask(t, admin, mine.ID, viewer.UserID)

	r1, err := f.resources.Create(f.ctx, admin, resourceRequest(mine.ID))
	require.NoError(t, err)
	_, err = f.resources.Create(f.ctx, admin, resourceRequest(other.ID))
	require.NoError(t, err)

	all, err := f.resources.List(f.ctx, admin, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	visible, err := f.resources.List(f.ctx, viewer, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, visible.Items, 1)
	assert.Equal(t, r1.ID, visible.Items[0].ID)

	_, err = f.resources.List(f.ctx, plain, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEliminarRecurso_EsLogico(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	res, err := f.resources.Create(f.ctx, admin, resourceRequest(pr.ID))
	require.NoError(t, err)

	require.NoError(t, f.resources.Delete(f.ctx, admin, res.ID))

	_, err = f.resources.GetByID(f.ctx, admin, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.resources.Delete(f.ctx, admin, res.ID), domain.ErrNotFound)

	got, err := f.projects.GetByID(f.ctx, admin, pr.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Count.Resources)
}

func TestActualizarRecurso(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	res, err := f.resources.Create(f.ctx, admin, resourceRequest(pr.ID))
	require.NoError(t, err)
	manager := f.addUser(t, f.a, entity.RoleManager, access.PermManageTeamResources)

	out, err := f.resources.Update(f.ctx, manager, res.ID, dto.UpdateResourceRequest{ResourceType: strPtr("QA")})
	require.NoError(t, err)
	assert.Equal(t, "QA", out.ResourceType)

	_, err = f.resources.Update(f.ctx, adminOf(f.b), res.ID, dto.UpdateResourceRequest{ResourceType: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
