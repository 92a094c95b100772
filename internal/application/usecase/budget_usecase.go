package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// Acciones registradas en la bitácora para presupuestos.
const (
	ActionBudgetCreated = "Created budget"
	ActionBudgetUpdated = "Updated budget"
	ActionBudgetDeleted = "Deleted budget"
)

// BudgetUseCase CRUD de presupuestos (borrado físico) con bitácora transaccional.
type BudgetUseCase struct {
	repos repository.Repos
	tx    TxRunner
}

// NewBudgetUseCase construye el caso de uso con los puertos de persistencia.
func NewBudgetUseCase(repos repository.Repos, tx TxRunner) *BudgetUseCase {
	return &BudgetUseCase{repos: repos, tx: tx}
}

// Create crea una línea de presupuesto en el proyecto indicado.
func (uc *BudgetUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateBudgetRequest) (*entity.Budget, error) {
	if err := access.Can(p, access.BudgetCreate); err != nil {
		return nil, err
	}
	if in.AllocatedAmount.IsNegative() || in.SpentAmount.IsNegative() {
		return nil, domain.NewValidationError("los montos no pueden ser negativos", "allocatedAmount", "spentAmount")
	}
	var budget *entity.Budget
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		project, err := resolveProject(ctx, r.Projects, p, in.ProjectID)
		if err != nil {
			return err
		}
		now := time.Now()
		budget = &entity.Budget{
			ID:              uuid.New().String(),
			CompanyID:       project.CompanyID,
			ProjectID:       project.ID,
			Category:        in.Category,
			AllocatedAmount: in.AllocatedAmount,
			SpentAmount:     in.SpentAmount,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := r.Budgets.Create(ctx, budget); err != nil {
			return err
		}
		return logActivity(ctx, r, budget.CompanyID, entity.EntityBudget, budget.ID, ActionBudgetCreated, nil, budget)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// List lista presupuestos de la empresa, opcionalmente de un proyecto.
func (uc *BudgetUseCase) List(ctx context.Context, p access.Principal, projectID string, page dto.PageRequest) (*dto.BudgetListResponse, error) {
	scope, err := access.ListScope(p, access.BudgetRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Budgets.List(ctx, scope, projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]entity.Budget, 0, len(list))
	for _, b := range list {
		items = append(items, *b)
	}
	return &dto.BudgetListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene un presupuesto.
func (uc *BudgetUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*entity.Budget, error) {
	scope, err := access.ListScope(p, access.BudgetRead)
	if err != nil {
		return nil, err
	}
	b, err := uc.repos.Budgets.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Update actualiza un presupuesto y registra el antes y el después.
func (uc *BudgetUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateBudgetRequest) (*entity.Budget, error) {
	if err := access.Can(p, access.BudgetEdit); err != nil {
		return nil, err
	}
	var budget *entity.Budget
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		b, err := r.Budgets.GetByID(ctx, access.TenantScope(p), id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		before := *b
		if in.Category != nil {
			b.Category = *in.Category
		}
		if in.AllocatedAmount != nil {
			b.AllocatedAmount = *in.AllocatedAmount
		}
		if in.SpentAmount != nil {
			b.SpentAmount = *in.SpentAmount
		}
		if in.Notes != nil {
			b.Notes = *in.Notes
		}
		if b.AllocatedAmount.IsNegative() || b.SpentAmount.IsNegative() {
			return domain.NewValidationError("los montos no pueden ser negativos", "allocatedAmount", "spentAmount")
		}
		b.UpdatedAt = time.Now()
		if err := r.Budgets.Update(ctx, b); err != nil {
			return err
		}
		budget = b
		return logActivity(ctx, r, b.CompanyID, entity.EntityBudget, b.ID, ActionBudgetUpdated, before, b)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// Delete elimina el presupuesto y lo registra en la bitácora.
func (uc *BudgetUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.BudgetDelete); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		b, err := r.Budgets.GetByID(ctx, access.TenantScope(p), id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		if err := r.Budgets.Delete(ctx, b.CompanyID, b.ID); err != nil {
			return err
		}
		return logActivity(ctx, r, b.CompanyID, entity.EntityBudget, b.ID, ActionBudgetDeleted, b, nil)
	})
}
