package repository

// Repos agrupa los puertos atados a una misma conexión o transacción.
type Repos struct {
	Companies CompanyRepository
	Users     UserRepository
	Projects  ProjectRepository
	Tasks     TaskRepository
	Resources ResourceRepository
	Risks     RiskRepository
	Budgets   BudgetRepository
	Activity  ActivityLogRepository
	Dashboard DashboardRepository
}
