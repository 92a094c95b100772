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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `p.id, p.company_id, p.name, p.client_name, p.start_date, p.end_date, p.project_manager,
	p.budget, p.status, p.priority_level, p.notes, p.created_at, p.updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.ClientName, &p.StartDate, &p.EndDate, &p.ProjectManager,
		&p.Budget, &p.Status, &p.PriorityLevel, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, company_id, name, client_name, start_date, end_date, project_manager,
			budget, status, priority_level, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.ClientName, p.StartDate, p.EndDate, p.ProjectManager,
		p.Budget, p.Status, p.PriorityLevel, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto dentro del alcance.
func (r *ProjectRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Project, error) {
	var w where
	w.add("p.id = ?", id)
	w.tenant(scope, "p.company_id")
	w.assignedProject(scope, "p.id")
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects p`+w.String(), w.args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Update actualiza un proyecto de su empresa.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $3, client_name = $4, start_date = $5, end_date = $6, project_manager = $7,
		    budget = $8, status = $9, priority_level = $10, notes = $11, updated_at = $12
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.ClientName, p.StartDate, p.EndDate, p.ProjectManager,
		p.Budget, p.Status, p.PriorityLevel, p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proyecto. La FK de tasks no tiene cascada: con tareas falla con ErrConflict.
func (r *ProjectRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista proyectos del alcance, más recientes primero.
func (r *ProjectRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Project, error) {
	var w where
	w.tenant(scope, "p.company_id")
	w.assignedProject(scope, "p.id")
	query := `SELECT ` + projectColumns + ` FROM projects p` + w.String() +
		` ORDER BY p.created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Counts cuenta los registros hijos vigentes del proyecto.
func (r *ProjectRepo) Counts(ctx context.Context, id string) (entity.ProjectCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM tasks     WHERE project_id = $1),
			(SELECT COUNT(*) FROM risks     WHERE project_id = $1 AND status <> 'DELETED'),
			(SELECT COUNT(*) FROM resources WHERE project_id = $1 AND status <> 'DELETED'),
			(SELECT COUNT(*) FROM budgets   WHERE project_id = $1)`
	var c entity.ProjectCounts
	if err := r.q.QueryRow(ctx, query, id).Scan(&c.Tasks, &c.Risks, &c.Resources, &c.Budgets); err != nil {
		return c, fmt.Errorf("project counts: %w", err)
	}
	return c, nil
}
