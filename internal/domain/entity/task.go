package entity

import "time"

// Estados de Task usados por el dashboard.
const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
)

// Task pertenece a un Project (y por tanto a su Company); AssignedTo es opcional.
type Task struct {
	ID             string
	CompanyID      string
	ProjectID      string
	Title          string
	AssignedTo     string // ID de User, "" si no está asignada
	Priority       string
	Status         string
	StartDate      time.Time
	EndDate        time.Time
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
