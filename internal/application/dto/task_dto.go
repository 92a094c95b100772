package dto

import "time"

// CreateTaskRequest entrada para crear una tarea. La empresa sale del proyecto.
type CreateTaskRequest struct {
	ProjectID      string `json:"projectId" validate:"required,uuid"`
	Title          string `json:"title" validate:"required,min=1,max=300"`
	AssignedTo     string `json:"assignedTo" validate:"omitempty,uuid"`
	Priority       string `json:"priority" validate:"max=20"`
	Status         string `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	StartDate      Date   `json:"startDate" validate:"required"`
	EndDate        Date   `json:"endDate" validate:"required"`
	CompletionDate *Date  `json:"completionDate"`
}

// UpdateTaskRequest entrada para actualizar una tarea (campos opcionales).
// AssignedTo = "" desasigna la tarea.
type UpdateTaskRequest struct {
	ProjectID      *string `json:"projectId" validate:"omitempty,uuid"`
	Title          *string `json:"title" validate:"omitempty,min=1,max=300"`
	AssignedTo     *string `json:"assignedTo" validate:"omitempty,uuid"`
	Priority       *string `json:"priority" validate:"omitempty,max=20"`
	Status         *string `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	StartDate      *Date   `json:"startDate"`
	EndDate        *Date   `json:"endDate"`
	CompletionDate *Date   `json:"completionDate"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"companyId"`
	ProjectID      string     `json:"projectId"`
	Title          string     `json:"title"`
	AssignedTo     *string    `json:"assignedTo"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	CompletionDate *time.Time `json:"completionDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TaskListResponse lista paginada de tareas.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
