package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo conteos agregados para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// ProjectStatusCounts cuenta proyectos por estado.
func (r *DashboardRepo) ProjectStatusCounts(ctx context.Context, scope access.Scope) (map[string]int, error) {
	var w where
	w.tenant(scope, "p.company_id")
	w.assignedProject(scope, "p.id")
	return r.countBy(ctx, `SELECT p.status, COUNT(*) FROM projects p`+w.String()+` GROUP BY p.status`, w.args)
}

// TaskStatusCounts cuenta tareas por estado.
func (r *DashboardRepo) TaskStatusCounts(ctx context.Context, scope access.Scope) (map[string]int, error) {
	var w where
	w.tenant(scope, "company_id")
	if scope.IsNarrowed() {
		w.add("assigned_to = ?", scope.AssigneeID)
	}
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM tasks`+w.String()+` GROUP BY status`, w.args)
}

func (r *DashboardRepo) countBy(ctx context.Context, query string, args []any) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan dashboard count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
