package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Project usados por el dashboard.
const (
	ProjectStatusPlanned   = "PLANNED"
	ProjectStatusActive    = "ACTIVE"
	ProjectStatusCompleted = "COMPLETED"
	ProjectStatusOnHold    = "ON_HOLD"
)

// Project pertenece a una Company; agrupa tareas, recursos, riesgos y presupuestos.
type Project struct {
	ID             string
	CompanyID      string
	Name           string
	ClientName     string
	StartDate      time.Time
	EndDate        time.Time
	ProjectManager string
	Budget         decimal.Decimal
	Status         string
	PriorityLevel  string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectCounts cantidades de registros hijos de un proyecto.
type ProjectCounts struct {
	Tasks     int
	Risks     int
	Resources int
	Budgets   int
}
