package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

func taskRequest(projectID, assignee string) dto.CreateTaskRequest {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateTaskRequest{
		ProjectID:  projectID,
		Title:      "tarea",
		AssignedTo: assignee,
		StartDate:  dto.NewDate(start),
		EndDate:    dto.NewDate(start.AddDate(0, 0, 3)),
	}
}

func TestCrearTarea_ReferenciasEntreEmpresas(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	own := f.addProject(t, admin, "acme")
	foreign := f.addProject(t, adminOf(f.b), "globex")
	outsider := f.addUser(t, f.b, entity.RoleUser)

	_, err := f.tasks.Create(f.ctx, admin, taskRequest(foreign.ID, ""))
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)

	_, err = f.tasks.Create(f.ctx, admin, taskRequest(own.ID, outsider.UserID))
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)

	_, err = f.tasks.Create(f.ctx, admin, taskRequest("missing", ""))
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)

	list, err := f.tasks.List(f.ctx, superadmin, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCrearTarea_ValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	assigner := f.addUser(t, f.a, entity.RoleUser, access.PermAssignTasks)

	out, err := f.tasks.Create(f.ctx, assigner, taskRequest(pr.ID, assigner.UserID))
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusPending, out.Status)
	assert.Equal(t, f.a.Company.ID, out.CompanyID)
	require.NotNil(t, out.AssignedTo)
	assert.Equal(t, assigner.UserID, *out.AssignedTo)

	plain := f.addUser(t, f.a, entity.RoleUser)
	_, err = f.tasks.Create(f.ctx, plain, taskRequest(pr.ID, ""))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListarTareas_SinAssignTasksSoloPropias(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	user := f.addUser(t, f.a, entity.RoleUser)
	mine := f.addTask(t, admin, pr.ID, user.UserID)
	f.addTask(t, admin, pr.ID, "")

	list, err := f.tasks.List(f.ctx, user, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, mine.ID, list.Items[0].ID)

	list, err = f.tasks.List(f.ctx, admin, pr.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestActualizarTarea_NoSeMueveAOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	second := f.addProject(t, admin, "acme 2")
	foreign := f.addProject(t, adminOf(f.b), "globex")
	task := f.addTask(t, admin, pr.ID, "")

	_, err := f.tasks.Update(f.ctx, admin, task.ID, dto.UpdateTaskRequest{ProjectID: &foreign.ID})
	assert.ErrorIs(t, err, domain.ErrCrossTenantReference)

	out, err := f.tasks.Update(f.ctx, admin, task.ID, dto.UpdateTaskRequest{
		ProjectID: &second.ID,
		Status:    strPtr(entity.TaskStatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, out.ProjectID)
	assert.Equal(t, entity.TaskStatusInProgress, out.Status)
}

func TestEliminarTarea_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	task := f.addTask(t, admin, pr.ID, "")
	manager := f.addUser(t, f.a, entity.RoleManager, access.PermAssignTasks)

	err := f.tasks.Delete(f.ctx, manager, task.ID)
	var denied *access.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, access.ReasonAdminOnly, denied.Reason)

	assert.ErrorIs(t, f.tasks.Delete(f.ctx, adminOf(f.b), task.ID), domain.ErrNotFound)
	require.NoError(t, f.tasks.Delete(f.ctx, admin, task.ID))
}

func TestEliminarUsuario_DesasignaTareas(t *testing.T) {
	f := newFixture(t)
	admin := adminOf(f.a)
	pr := f.addProject(t, admin, "acme")
	user := f.addUser(t, f.a, entity.RoleUser)
	task := f.addTask(t, admin, pr.ID, user.UserID)

	require.NoError(t, f.users.Delete(f.ctx, admin, user.UserID))

	got, err := f.tasks.GetByID(f.ctx, admin, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)
}
