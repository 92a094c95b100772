package dto

import "github.com/jhoicas/Proyectos-api/internal/domain/entity"

// CreateRiskRequest entrada para crear un riesgo.
type CreateRiskRequest struct {
	ProjectID      string `json:"projectId" validate:"required,uuid"`
	Description    string `json:"description" validate:"required,min=1"`
	SeverityLevel  string `json:"severityLevel" validate:"required,max=20"`
	MitigationPlan string `json:"mitigationPlan"`
	RiskOwner      string `json:"riskOwner" validate:"max=200"`
	Status         string `json:"status" validate:"omitempty,max=20,ne=DELETED"`
}

// UpdateRiskRequest entrada para actualizar un riesgo (campos opcionales).
type UpdateRiskRequest struct {
	Description    *string `json:"description" validate:"omitempty,min=1"`
	SeverityLevel  *string `json:"severityLevel" validate:"omitempty,max=20"`
	MitigationPlan *string `json:"mitigationPlan"`
	RiskOwner      *string `json:"riskOwner" validate:"omitempty,max=200"`
	Status         *string `json:"status" validate:"omitempty,max=20,ne=DELETED"`
}

// RiskDetailResponse riesgo con su proyecto.
type RiskDetailResponse struct {
	entity.Risk
	Project *ProjectRef `json:"project"`
}

// RiskListResponse lista paginada de riesgos. La entidad ya trae tags JSON.
type RiskListResponse struct {
	Items []entity.Risk `json:"items"`
	Page  PageResponse  `json:"page"`
}
