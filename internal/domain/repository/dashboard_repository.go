package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
)

// DashboardRepository conteos por estado para el dashboard.
type DashboardRepository interface {
	ProjectStatusCounts(ctx context.Context, scope access.Scope) (map[string]int, error)
	TaskStatusCounts(ctx context.Context, scope access.Scope) (map[string]int, error)
}
