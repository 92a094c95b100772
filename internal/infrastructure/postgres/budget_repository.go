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

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementación del puerto BudgetRepository sobre PostgreSQL.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador de persistencia para presupuestos.
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, company_id, project_id, category, allocated_amount, spent_amount, notes, created_at, updated_at`

func scanBudget(row pgx.Row) (*entity.Budget, error) {
	var b entity.Budget
	err := row.Scan(&b.ID, &b.CompanyID, &b.ProjectID, &b.Category, &b.AllocatedAmount, &b.SpentAmount,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste una nueva línea de presupuesto.
func (r *BudgetRepo) Create(ctx context.Context, b *entity.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.ProjectID, b.Category, b.AllocatedAmount, b.SpentAmount,
		b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// GetByID obtiene un presupuesto dentro del alcance.
func (r *BudgetRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Budget, error) {
	var w where
	w.add("id = ?", id)
	w.tenant(scope, "company_id")
	b, err := scanBudget(r.q.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets`+w.String(), w.args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// Update actualiza un presupuesto de su empresa.
func (r *BudgetRepo) Update(ctx context.Context, b *entity.Budget) error {
	query := `
		UPDATE budgets
		SET project_id = $3, category = $4, allocated_amount = $5, spent_amount = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.ProjectID, b.Category, b.AllocatedAmount, b.SpentAmount, b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el presupuesto.
func (r *BudgetRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista presupuestos del alcance.
func (r *BudgetRepo) List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Budget, error) {
	var w where
	w.tenant(scope, "company_id")
	if projectID != "" {
		w.add("project_id = ?", projectID)
	}
	query := `SELECT ` + budgetColumns + ` FROM budgets` + w.String() +
		` ORDER BY created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
