package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.ResourceRepository = (*ResourceRepo)(nil)

// ResourceRepo implementación del puerto ResourceRepository sobre PostgreSQL.
type ResourceRepo struct {
	q Querier
}

// NewResourceRepository construye el adaptador de persistencia para recursos.
func NewResourceRepository(q Querier) *ResourceRepo {
	return &ResourceRepo{q: q}
}

const resourceColumns = `r.id, r.company_id, r.project_id, r.resource_type, r.assigned_project,
	r.allocation_start, r.allocation_end, r.utilization_rate, r.status, r.created_at, r.updated_at`

func scanResource(row pgx.Row) (*entity.Resource, error) {
	var res entity.Resource
	err := row.Scan(&res.ID, &res.CompanyID, &res.ProjectID, &res.ResourceType, &res.AssignedProject,
		&res.AllocationStart, &res.AllocationEnd, &res.UtilizationRate, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create persiste un nuevo recurso.
func (r *ResourceRepo) Create(ctx context.Context, res *entity.Resource) error {
	query := `
		INSERT INTO resources (id, company_id, project_id, resource_type, assigned_project,
			allocation_start, allocation_end, utilization_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.CompanyID, res.ProjectID, res.ResourceType, res.AssignedProject,
		res.AllocationStart, res.AllocationEnd, res.UtilizationRate, res.Status, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// GetByID obtiene un recurso vigente dentro del alcance.
func (r *ResourceRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Resource, error) {
	var w where
	w.add("r.id = ?", id)
	w.add("r.status <> ?", entity.StatusDeleted)
	w.tenant(scope, "r.company_id")
	w.assignedProject(scope, "r.project_id")
	res, err := scanResource(r.q.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources r`+w.String(), w.args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

// Update actualiza un recurso vigente.
func (r *ResourceRepo) Update(ctx context.Context, res *entity.Resource) error {
	query := `
		UPDATE resources
		SET project_id = $3, resource_type = $4, assigned_project = $5, allocation_start = $6,
		    allocation_end = $7, utilization_rate = $8, status = $9, updated_at = $10
		WHERE id = $1 AND company_id = $2 AND status <> 'DELETED'`
	tag, err := r.q.Exec(ctx, query,
		res.ID, res.CompanyID, res.ProjectID, res.ResourceType, res.AssignedProject,
		res.AllocationStart, res.AllocationEnd, res.UtilizationRate, res.Status, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el recurso como DELETED.
func (r *ResourceRepo) SoftDelete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE resources SET status = 'DELETED', updated_at = now() WHERE id = $1 AND company_id = $2 AND status <> 'DELETED'`,
		id, companyID)
	if err != nil {
		return fmt.Errorf("soft delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista recursos vigentes del alcance.
func (r *ResourceRepo) List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Resource, error) {
	var w where
	w.add("r.status <> ?", entity.StatusDeleted)
	w.tenant(scope, "r.company_id")
	w.assignedProject(scope, "r.project_id")
	if projectID != "" {
		w.add("r.project_id = ?", projectID)
	}
	query := `SELECT ` + resourceColumns + ` FROM resources r` + w.String() +
		` ORDER BY r.created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()
	var list []*entity.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
