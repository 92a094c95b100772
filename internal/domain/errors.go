package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthenticated      = errors.New("no autenticado")
	ErrUnauthorized         = errors.New("credenciales inválidas")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrSeatLimitExceeded    = errors.New("límite de usuarios del plan alcanzado")
	ErrCrossTenantReference = errors.New("referencia a un registro de otra empresa")
	ErrInactiveAccount      = errors.New("cuenta de usuario inactiva")
	ErrInactiveCompany      = errors.New("empresa inactiva o inexistente")
	ErrTooManyAttempts      = errors.New("demasiados intentos de login")
)

// ValidationError detalla qué campos fallaron; errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields []string
	Msg    string
}

// NewValidationError construye un ValidationError con un mensaje legible.
func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Msg: msg, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	return e.Msg + ": " + strings.Join(e.Fields, ", ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConflictError operación rechazada por el estado actual del recurso; errors.Is(err, ErrConflict) es true.
type ConflictError struct {
	Msg string
}

// NewConflictError construye un ConflictError con un mensaje para el cliente.
func NewConflictError(msg string) *ConflictError { return &ConflictError{Msg: msg} }

func (e *ConflictError) Error() string { return e.Msg }

// Is permite errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
