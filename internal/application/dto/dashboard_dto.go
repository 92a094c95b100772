package dto

// StatusCount punto de un gráfico de estados: nombre legible y cantidad.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardSummary conteos de proyectos y tareas por estado.
type DashboardSummary struct {
	Projects []StatusCount `json:"projects"`
	Tasks    []StatusCount `json:"tasks"`
}
