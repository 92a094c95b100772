package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// CreateBudgetRequest entrada para crear una línea de presupuesto.
type CreateBudgetRequest struct {
	ProjectID       string          `json:"projectId" validate:"required,uuid"`
	Category        string          `json:"category" validate:"required,max=100"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	Notes           string          `json:"notes"`
}

// UpdateBudgetRequest entrada para actualizar un presupuesto (campos opcionales).
type UpdateBudgetRequest struct {
	Category        *string          `json:"category" validate:"omitempty,min=1,max=100"`
	AllocatedAmount *decimal.Decimal `json:"allocatedAmount"`
	SpentAmount     *decimal.Decimal `json:"spentAmount"`
	Notes           *string          `json:"notes"`
}

// BudgetListResponse lista paginada de presupuestos.
type BudgetListResponse struct {
	Items []entity.Budget `json:"items"`
	Page  PageResponse    `json:"page"`
}
