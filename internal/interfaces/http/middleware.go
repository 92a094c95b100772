package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/Proyectos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

// localRequestID key que usa el middleware requestid de Fiber por defecto.
const localRequestID = "requestid"

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}

// MetricsMiddleware registra conteo y latencia por método, patrón de ruta y status.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// El ErrorHandler aún no escribió la respuesta.
			status, _ = mapError(err)
		}
		// Prometheus guarda los labels: no pueden apuntar al buffer que Fiber reutiliza.
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// AccessLog escribe una línea por petición con el principal cuando la ruta es autenticada.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status, _ = mapError(err)
		}
		p, _ := GetPrincipal(c)
		log.Request(requestID(c), p.UserID, p.CompanyID).ForStatus(status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}
