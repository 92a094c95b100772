package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	ProjectUC   *usecase.ProjectUseCase
	TaskUC      *usecase.TaskUseCase
	ResourceUC  *usecase.ResourceUseCase
	RiskUC      *usecase.RiskUseCase
	BudgetUC    *usecase.BudgetUseCase
	ActivityUC  *usecase.ActivityUseCase
	DashboardUC *usecase.DashboardUseCase
	AuthUC      *auth.AuthUseCase

	JWTSecret     string
	AllowedOrigin string // "" o "*" permite cualquier origen sin credenciales
	ServiceName   string
	Logger        *logger.Logger
}

// Router registra middlewares globales y las rutas de la API.
// La app debe crearse con ErrorHandler(log) para que los errores de los use cases
// lleguen al cliente con el status correcto.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(corsMiddleware(deps.AllowedOrigin))
	app.Use(MetricsMiddleware())
	app.Use(AccessLog(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/user/login", authHandler.Login)
	api.Get("/auth/me", requireAuth, authHandler.Me)

	// A partir de aquí todo requiere Bearer Token.
	companies := api.Group("/companies", requireAuth)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/plan/:companyId", companyHandler.Plan)
	companies.Put("/:companyId/user/:userId", companyHandler.ToggleUserStatus)
	companies.Get("/:companyId", companyHandler.GetByID)
	companies.Patch("/:companyId", companyHandler.Update)
	companies.Put("/:companyId", companyHandler.Update)
	companies.Delete("/:companyId", companyHandler.Delete)

	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	projects := api.Group("/projects", requireAuth)
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)

	tasks := api.Group("/tasks", requireAuth)
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	resources := api.Group("/resources", requireAuth)
	resourceHandler := NewResourceHandler(deps.ResourceUC)
	resources.Post("/", resourceHandler.Create)
	resources.Get("/", resourceHandler.List)
	resources.Get("/:id", resourceHandler.GetByID)
	resources.Put("/:id", resourceHandler.Update)
	resources.Delete("/:id", resourceHandler.Delete)

	risks := api.Group("/risks", requireAuth)
	riskHandler := NewRiskHandler(deps.RiskUC)
	risks.Post("/", riskHandler.Create)
	risks.Get("/", riskHandler.List)
	risks.Get("/:id", riskHandler.GetByID)
	risks.Put("/:id", riskHandler.Update)
	risks.Delete("/:id", riskHandler.Delete)

	budgets := api.Group("/budgets", requireAuth)
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets.Post("/", budgetHandler.Create)
	budgets.Get("/", budgetHandler.List)
	budgets.Get("/:id", budgetHandler.GetByID)
	budgets.Put("/:id", budgetHandler.Update)
	budgets.Delete("/:id", budgetHandler.Delete)

	activity := api.Group("/activity", requireAuth)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activity.Get("/", activityHandler.List)
	activity.Get("/:entityType/:entityId", activityHandler.ByEntity)

	dashboard := api.Group("/dashboard", requireAuth)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/project-status", dashboardHandler.ProjectStatus)
	dashboard.Get("/task-status", dashboardHandler.TaskStatus)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}

func corsMiddleware(origin string) fiber.Handler {
	if origin == "" || origin == "*" {
		return cors.New(cors.Config{AllowOrigins: "*"})
	}
	return cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	})
}
