package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget línea de presupuesto de un proyecto. Se borra físicamente.
type Budget struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"companyId"`
	ProjectID       string          `json:"projectId"`
	Category        string          `json:"category"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
