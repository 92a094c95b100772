package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// TaskRepository puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, companyID, id string) error
	// List filtra por proyecto si projectID != ""; con scope reducido solo tareas asignadas.
	List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Task, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
}
