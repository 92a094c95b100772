package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Proyectos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Proyectos-api/internal/interfaces/http"
	"github.com/jhoicas/Proyectos-api/pkg/config"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Límite de intentos de login: solo con Redis configurado.
	var throttle auth.LoginThrottle
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, login sin límite de intentos")
		} else {
			defer rdb.Close()
			throttle = infraredis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, time.Duration(cfg.Login.LockMinutes)*time.Minute)
		}
	}

	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		Issuer: cfg.JWT.Issuer,
	}, throttle)

	if cfg.Seed.Enabled() {
		created, err := authUC.EnsureSuperadmin(ctx, cfg.Seed.SuperadminEmail, cfg.Seed.SuperadminPassword, cfg.Seed.SuperadminName)
		if err != nil {
			log.Fatal().Err(err).Msg("crear superadmin")
		}
		log.Info().Bool("created", created).Str("email", cfg.Seed.SuperadminEmail).Msg("superadmin verificado")
	} else {
		log.Warn().Msg("SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD sin definir, no se siembra superadmin")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Proyectos API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     usecase.NewCompanyUseCase(repos, txRunner),
		UserUC:        usecase.NewUserUseCase(repos, txRunner),
		ProjectUC:     usecase.NewProjectUseCase(repos, txRunner),
		TaskUC:        usecase.NewTaskUseCase(repos),
		ResourceUC:    usecase.NewResourceUseCase(repos),
		RiskUC:        usecase.NewRiskUseCase(repos, txRunner),
		BudgetUC:      usecase.NewBudgetUseCase(repos, txRunner),
		ActivityUC:    usecase.NewActivityUseCase(repos.Activity),
		DashboardUC:   usecase.NewDashboardUseCase(repos.Dashboard),
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
		AllowedOrigin: cfg.HTTP.AllowedOrigin,
		ServiceName:   cfg.App.Name,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
