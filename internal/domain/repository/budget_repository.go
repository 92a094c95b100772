package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// BudgetRepository puerto de persistencia para Budget (borrado físico).
type BudgetRepository interface {
	Create(ctx context.Context, b *entity.Budget) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Budget, error)
	Update(ctx context.Context, b *entity.Budget) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Budget, error)
}
