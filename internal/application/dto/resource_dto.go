package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateResourceRequest entrada para crear un recurso.
type CreateResourceRequest struct {
	ProjectID       string          `json:"projectId" validate:"required,uuid"`
	ResourceType    string          `json:"resourceType" validate:"required,max=100"`
	AssignedProject string          `json:"assignedProject" validate:"max=200"`
	AllocationStart Date            `json:"allocationStart" validate:"required"`
	AllocationEnd   Date            `json:"allocationEnd" validate:"required"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"`
	Status          string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UpdateResourceRequest entrada para actualizar un recurso (campos opcionales).
type UpdateResourceRequest struct {
	ProjectID       *string          `json:"projectId" validate:"omitempty,uuid"`
	ResourceType    *string          `json:"resourceType" validate:"omitempty,max=100"`
	AssignedProject *string          `json:"assignedProject" validate:"omitempty,max=200"`
	AllocationStart *Date            `json:"allocationStart"`
	AllocationEnd   *Date            `json:"allocationEnd"`
	UtilizationRate *decimal.Decimal `json:"utilizationRate"`
	Status          *string          `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ResourceResponse salida de un recurso.
type ResourceResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"companyId"`
	ProjectID       string          `json:"projectId"`
	ResourceType    string          `json:"resourceType"`
	AssignedProject string          `json:"assignedProject"`
	AllocationStart time.Time       `json:"allocationStart"`
	AllocationEnd   time.Time       `json:"allocationEnd"`
	UtilizationRate decimal.Decimal `json:"utilizationRate"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Project         *ProjectRef     `json:"project,omitempty"` // solo en el detalle
}

// ResourceListResponse lista paginada de recursos.
type ResourceListResponse struct {
	Items []ResourceResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
