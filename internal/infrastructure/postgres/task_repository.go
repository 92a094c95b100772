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

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, company_id, project_id, title, assigned_to, priority, status,
	start_date, end_date, completion_date, created_at, updated_at`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var (
		t          entity.Task
		assignedTo *string
	)
	err := row.Scan(&t.ID, &t.CompanyID, &t.ProjectID, &t.Title, &assignedTo, &t.Priority, &t.Status,
		&t.StartDate, &t.EndDate, &t.CompletionDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil {
		t.AssignedTo = *assignedTo
	}
	return &t, nil
}

// Create persiste una nueva tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.ProjectID, t.Title, nilIfEmpty(t.AssignedTo), t.Priority, t.Status,
		t.StartDate, t.EndDate, t.CompletionDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea dentro del alcance.
func (r *TaskRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Task, error) {
	var w where
	w.add("id = ?", id)
	w.tenant(scope, "company_id")
	if scope.IsNarrowed() {
		w.add("assigned_to = ?", scope.AssigneeID)
	}
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks`+w.String(), w.args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update actualiza una tarea de su empresa.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks
		SET project_id = $3, title = $4, assigned_to = $5, priority = $6, status = $7,
		    start_date = $8, end_date = $9, completion_date = $10, updated_at = $11
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.ProjectID, t.Title, nilIfEmpty(t.AssignedTo), t.Priority, t.Status,
		t.StartDate, t.EndDate, t.CompletionDate, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la tarea.
func (r *TaskRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tareas del alcance, opcionalmente de un proyecto.
func (r *TaskRepo) List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Task, error) {
	var w where
	w.tenant(scope, "company_id")
	if scope.IsNarrowed() {
		w.add("assigned_to = ?", scope.AssigneeID)
	}
	if projectID != "" {
		w.add("project_id = ?", projectID)
	}
	query := `SELECT ` + taskColumns + ` FROM tasks` + w.String() +
		` ORDER BY created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByProject cuenta las tareas de un proyecto.
func (r *TaskRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE project_id = $1`, projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
