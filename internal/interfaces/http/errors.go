package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

var errUnauthenticated = domain.ErrUnauthenticated

// errorMapping traduce un error de dominio a status y código. Message vacío usa err.Error().
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
	// authReason etiqueta de metrics.AuthFailuresTotal; vacío si no aplica.
	authReason string
}

// El orden importa: el primer errors.Is que coincide gana.
var errorTable = []errorMapping{
	{target: domain.ErrInvalidInput, status: fiber.StatusBadRequest, code: "VALIDATION_ERROR"},
	{target: domain.ErrCrossTenantReference, status: fiber.StatusBadRequest, code: "CROSS_TENANT_REFERENCE"},
	{target: domain.ErrConflict, status: fiber.StatusBadRequest, code: "CONFLICT"},
	{target: domain.ErrUnauthenticated, status: fiber.StatusUnauthorized, code: "UNAUTHENTICATED", message: "Unauthenticated"},
	{target: domain.ErrUnauthorized, status: fiber.StatusUnauthorized, code: "INVALID_CREDENTIALS", message: "Invalid credentials", authReason: "bad_credentials"},
	{target: domain.ErrInactiveAccount, status: fiber.StatusForbidden, code: "INACTIVE_ACCOUNT", message: "User account is inactive", authReason: "inactive_user"},
	{target: domain.ErrInactiveCompany, status: fiber.StatusForbidden, code: "INACTIVE_COMPANY", message: "Company is inactive or missing", authReason: "inactive_company"},
	{target: domain.ErrForbidden, status: fiber.StatusForbidden, code: "FORBIDDEN", message: "Forbidden"},
	{target: domain.ErrNotFound, status: fiber.StatusNotFound, code: "NOT_FOUND", message: "Not found"},
	{target: domain.ErrUserNotFound, status: fiber.StatusNotFound, code: "USER_NOT_FOUND", message: "User not found"},
	{target: domain.ErrEmailAlreadyExists, status: fiber.StatusConflict, code: "EMAIL_ALREADY_EXISTS", message: "Email already exists"},
	{target: domain.ErrDuplicate, status: fiber.StatusConflict, code: "DUPLICATE", message: "Duplicate resource"},
	{target: domain.ErrTooManyAttempts, status: fiber.StatusTooManyRequests, code: "TOO_MANY_ATTEMPTS", message: "Too many login attempts, try again later", authReason: "throttled"},
}

// ErrorHandler es el fiber.ErrorHandler de la API: los handlers devuelven el error del
// use case y aquí se decide status y cuerpo. Los 500 se registran con la causa.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		observeError(err)
		if status >= fiber.StatusInternalServerError {
			p, _ := GetPrincipal(c)
			log.Request(requestID(c), p.UserID, p.CompanyID).Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

// observeError cuenta en Prometheus las denegaciones y fallos de login.
func observeError(err error) {
	var seat *access.SeatLimitError
	if errors.As(err, &seat) {
		metrics.SeatLimitRejectionsTotal.WithLabelValues(seat.Role).Inc()
		return
	}
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		metrics.AuthzDenialsTotal.WithLabelValues(denied.Reason).Inc()
		return
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.authReason != "" {
				metrics.AuthFailuresTotal.WithLabelValues(m.authReason).Inc()
			}
			return
		}
	}
}

// mapError decide status y cuerpo; no tiene efectos.
func mapError(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Error: fe.Message, Code: fiberCode(fe.Code)}
	}

	var seat *access.SeatLimitError
	if errors.As(err, &seat) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: seat.Error(), Code: "SEAT_LIMIT_EXCEEDED"}
	}

	var denied *access.DeniedError
	if errors.As(err, &denied) {
		return fiber.StatusForbidden, dto.ErrorResponse{Error: "Forbidden", Code: denied.Reason, Details: denied.Error()}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Error: verr.Msg, Code: "VALIDATION_ERROR", Details: strings.Join(verr.Fields, ", ")}
	}

	for _, m := range errorTable {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		return m.status, dto.ErrorResponse{Error: msg, Code: m.code}
	}

	return fiber.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Code:    "INTERNAL",
		Details: err.Error(),
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "HTTP_ERROR"
	}
}

// errInvalidBody error para cuerpos que no se pueden parsear.
func errInvalidBody(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
}
