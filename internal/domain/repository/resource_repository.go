package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ResourceRepository puerto de persistencia para Resource. Los registros DELETED no se listan ni se leen.
type ResourceRepository interface {
	Create(ctx context.Context, r *entity.Resource) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Resource, error)
	Update(ctx context.Context, r *entity.Resource) error
	SoftDelete(ctx context.Context, companyID, id string) error
	// List con scope reducido: recursos de proyectos con alguna tarea asignada a scope.AssigneeID.
	List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Resource, error)
}
