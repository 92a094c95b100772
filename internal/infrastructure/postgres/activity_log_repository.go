package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo bitácora sobre PostgreSQL. Solo INSERT y SELECT.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador de la bitácora.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append agrega un registro.
func (r *ActivityLogRepo) Append(ctx context.Context, l *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, company_id, entity_type, entity_id, action, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.EntityType, l.EntityID, l.Action, nullJSON(l.OldValue), nullJSON(l.NewValue), l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List lista la bitácora del alcance, más reciente primero.
func (r *ActivityLogRepo) List(ctx context.Context, scope access.Scope, f repository.ActivityFilter, limit, offset int) ([]*entity.ActivityLog, error) {
	var w where
	w.tenant(scope, "company_id")
	if f.EntityType != "" {
		w.add("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		w.add("entity_id = ?", f.EntityID)
	}
	query := `SELECT id, company_id, entity_type, entity_id, action, old_value, new_value, created_at
		FROM activity_logs` + w.String() +
		` ORDER BY created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		var oldValue, newValue []byte
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.EntityType, &l.EntityID, &l.Action,
			&oldValue, &newValue, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		l.OldValue, l.NewValue = oldValue, newValue
		list = append(list, &l)
	}
	return list, rows.Err()
}

// nullJSON guarda NULL en lugar de un jsonb vacío.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
