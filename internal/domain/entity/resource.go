package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusDeleted marca de borrado lógico para Resource y Risk.
const StatusDeleted = "DELETED"

// Resource recurso asignado a un proyecto. Se borra lógicamente.
type Resource struct {
	ID              string
	CompanyID       string
	ProjectID       string
	ResourceType    string
	AssignedProject string
	AllocationStart time.Time
	AllocationEnd   time.Time
	UtilizationRate decimal.Decimal
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
