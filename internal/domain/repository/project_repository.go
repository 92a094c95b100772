package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ProjectRepository puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, companyID, id string) error
	// List con scope reducido devuelve los proyectos con alguna tarea asignada a scope.AssigneeID.
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Project, error)
	Counts(ctx context.Context, id string) (entity.ProjectCounts, error)
}
