package entity

import (
	"encoding/json"
	"time"
)

// Tipos de entidad registrados en la bitácora.
const (
	EntityRisk   = "RISK"
	EntityBudget = "BUDGET"
)

// ActivityLog registro inmutable de una mutación. Nunca se actualiza ni se borra.
type ActivityLog struct {
	ID         string
	CompanyID  string
	EntityType string
	EntityID   string
	Action     string
	OldValue   json.RawMessage // nil en creaciones
	NewValue   json.RawMessage
	CreatedAt  time.Time
}
