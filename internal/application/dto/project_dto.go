package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// CreateProjectRequest entrada para crear un proyecto. CompanyID solo aplica al superadmin.
type CreateProjectRequest struct {
	CompanyID      string          `json:"companyId" validate:"omitempty,uuid"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	ClientName     string          `json:"clientName" validate:"max=200"`
	StartDate      Date            `json:"startDate" validate:"required"`
	EndDate        Date            `json:"endDate" validate:"required"`
	ProjectManager string          `json:"projectManager" validate:"max=200"`
	Budget         decimal.Decimal `json:"budget"`
	Status         string          `json:"status" validate:"omitempty,oneof=PLANNED ACTIVE COMPLETED ON_HOLD"`
	PriorityLevel  string          `json:"priorityLevel" validate:"max=20"`
	Notes          string          `json:"notes"`
}

// UpdateProjectRequest entrada para actualizar un proyecto (campos opcionales).
type UpdateProjectRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ClientName     *string          `json:"clientName" validate:"omitempty,max=200"`
	StartDate      *Date            `json:"startDate"`
	EndDate        *Date            `json:"endDate"`
	ProjectManager *string          `json:"projectManager" validate:"omitempty,max=200"`
	Budget         *decimal.Decimal `json:"budget"`
	Status         *string          `json:"status" validate:"omitempty,oneof=PLANNED ACTIVE COMPLETED ON_HOLD"`
	PriorityLevel  *string          `json:"priorityLevel" validate:"omitempty,max=20"`
	Notes          *string          `json:"notes"`
}

// ProjectCountsResponse cantidad de registros hijos.
type ProjectCountsResponse struct {
	Tasks     int `json:"tasks"`
	Risks     int `json:"risks"`
	Resources int `json:"resources"`
	Budgets   int `json:"budgets"`
}

// ProjectResponse salida de un proyecto. Count solo se incluye en el detalle.
type ProjectResponse struct {
	ID             string                 `json:"id"`
	CompanyID      string                 `json:"companyId"`
	Name           string                 `json:"name"`
	ClientName     string                 `json:"clientName"`
	StartDate      time.Time              `json:"startDate"`
	EndDate        time.Time              `json:"endDate"`
	ProjectManager string                 `json:"projectManager"`
	Budget         decimal.Decimal        `json:"budget"`
	Status         string                 `json:"status"`
	PriorityLevel  string                 `json:"priorityLevel"`
	Notes          string                 `json:"notes"`
	Count          *ProjectCountsResponse `json:"_count,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// ProjectDetailResponse detalle de un proyecto con sus tareas, riesgos y recursos
// visibles para el principal.
type ProjectDetailResponse struct {
	ProjectResponse
	Tasks     []TaskResponse     `json:"tasks"`
	Risks     []entity.Risk      `json:"risks"`
	Resources []ResourceResponse `json:"resources"`
}

// ProjectRef proyecto embebido en el detalle de un riesgo o recurso.
type ProjectRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ProjectListResponse lista paginada de proyectos.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
