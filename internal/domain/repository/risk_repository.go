package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// RiskRepository puerto de persistencia para Risk. Los registros DELETED no se listan ni se leen.
type RiskRepository interface {
	Create(ctx context.Context, r *entity.Risk) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Risk, error)
	Update(ctx context.Context, r *entity.Risk) error
	SoftDelete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Risk, error)
}
