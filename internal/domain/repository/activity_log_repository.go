package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// ActivityFilter filtros opcionales de la bitácora.
type ActivityFilter struct {
	EntityType string
	EntityID   string
}

// ActivityLogRepository bitácora append-only: no hay Update ni Delete.
type ActivityLogRepository interface {
	Append(ctx context.Context, log *entity.ActivityLog) error
	// List devuelve los registros más recientes primero.
	List(ctx context.Context, scope access.Scope, f ActivityFilter, limit, offset int) ([]*entity.ActivityLog, error)
}
