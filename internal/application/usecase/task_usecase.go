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

// TaskUseCase CRUD de tareas. Proyecto y responsable deben ser de la misma empresa que la tarea.
type TaskUseCase struct {
	repos repository.Repos
}

// NewTaskUseCase construye el caso de uso con los puertos de persistencia.
func NewTaskUseCase(repos repository.Repos) *TaskUseCase {
	return &TaskUseCase{repos: repos}
}

// Create crea una tarea en el proyecto indicado.
func (uc *TaskUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := access.Can(p, access.TaskCreate); err != nil {
		return nil, err
	}
	if err := checkDates(in.StartDate.Time, in.EndDate.Time, "startDate", "endDate"); err != nil {
		return nil, err
	}
	project, err := resolveProject(ctx, uc.repos.Projects, p, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAssignee(ctx, project.CompanyID, in.AssignedTo); err != nil {
		return nil, err
	}
	now := time.Now()
	task := &entity.Task{
		ID:             uuid.New().String(),
		CompanyID:      project.CompanyID,
		ProjectID:      project.ID,
		Title:          in.Title,
		AssignedTo:     in.AssignedTo,
		Priority:       in.Priority,
		Status:         orDefault(in.Status, entity.TaskStatusPending),
		StartDate:      in.StartDate.Time,
		EndDate:        in.EndDate.Time,
		CompletionDate: in.CompletionDate.TimePtr(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repos.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	out := taskToResponse(task)
	return &out, nil
}

func (uc *TaskUseCase) checkAssignee(ctx context.Context, companyID, userID string) error {
	if userID == "" {
		return nil
	}
	ok, err := uc.repos.Users.BelongsTo(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCrossTenantReference
	}
	return nil
}

// List lista tareas, opcionalmente de un proyecto. Sin "Assign Tasks" solo las asignadas al principal.
func (uc *TaskUseCase) List(ctx context.Context, p access.Principal, projectID string, page dto.PageRequest) (*dto.TaskListResponse, error) {
	scope, err := access.ListScope(p, access.TaskRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Tasks.List(ctx, scope, projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, taskToResponse(t))
	}
	return &dto.TaskListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene una tarea visible para el principal.
func (uc *TaskUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.TaskResponse, error) {
	scope, err := access.ListScope(p, access.TaskRead)
	if err != nil {
		return nil, err
	}
	t, err := uc.repos.Tasks.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	out := taskToResponse(t)
	return &out, nil
}

// Update actualiza una tarea. Moverla de proyecto solo se permite dentro de la misma empresa.
func (uc *TaskUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if err := access.Can(p, access.TaskEdit); err != nil {
		return nil, err
	}
	t, err := uc.repos.Tasks.GetByID(ctx, access.TenantScope(p), id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProjectID != nil && *in.ProjectID != t.ProjectID {
		project, err := resolveProject(ctx, uc.repos.Projects, p, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := access.CheckReference(t.CompanyID, project.CompanyID); err != nil {
			return nil, err
		}
		t.ProjectID = project.ID
	}
	if in.AssignedTo != nil {
		if err := uc.checkAssignee(ctx, t.CompanyID, *in.AssignedTo); err != nil {
			return nil, err
		}
		t.AssignedTo = *in.AssignedTo
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.StartDate != nil {
		t.StartDate = in.StartDate.Time
	}
	if in.EndDate != nil {
		t.EndDate = in.EndDate.Time
	}
	if in.CompletionDate != nil {
		t.CompletionDate = in.CompletionDate.TimePtr()
	}
	if err := checkDates(t.StartDate, t.EndDate, "startDate", "endDate"); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	if err := uc.repos.Tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	out := taskToResponse(t)
	return &out, nil
}

// Delete elimina una tarea (solo admin).
func (uc *TaskUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.TaskDelete); err != nil {
		return err
	}
	t, err := uc.repos.Tasks.GetByID(ctx, access.TenantScope(p), id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Tasks.Delete(ctx, t.CompanyID, t.ID)
}

func taskToResponse(t *entity.Task) dto.TaskResponse {
	var assigned *string
	if t.AssignedTo != "" {
		a := t.AssignedTo
		assigned = &a
	}
	return dto.TaskResponse{
		ID:             t.ID,
		CompanyID:      t.CompanyID,
		ProjectID:      t.ProjectID,
		Title:          t.Title,
		AssignedTo:     assigned,
		Priority:       t.Priority,
		Status:         t.Status,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		CompletionDate: t.CompletionDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
