package entity

import "time"

// Risk riesgo de un proyecto. Se borra lógicamente (Status = DELETED).
type Risk struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"companyId"`
	ProjectID      string    `json:"projectId"`
	Description    string    `json:"description"`
	SeverityLevel  string    `json:"severityLevel"`
	MitigationPlan string    `json:"mitigationPlan"`
	RiskOwner      string    `json:"riskOwner"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
