package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation 23503: el registro referenciado no existe o sigue referenciado.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// isInvalidText 22P02: el valor no se puede convertir al tipo de la columna (p. ej. un id que no es UUID).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

// isNotFound la fila no existe, o el id buscado no puede existir porque no es un UUID válido.
func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidText(err)
}

// where acumula condiciones y argumentos posicionales ($1, $2, ...).
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; "?" se reemplaza por el siguiente placeholder.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

// next reserva un placeholder para un argumento que no es condición (LIMIT, OFFSET).
func (w *where) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// tenant agrega el filtro company_id del alcance. Un alcance vacío (sin empresa y sin
// AllCompanies) no debe ver nada, así que se fuerza una condición falsa.
func (w *where) tenant(scope access.Scope, col string) {
	if scope.AllCompanies {
		return
	}
	if scope.CompanyID == "" {
		w.conds = append(w.conds, "FALSE")
		return
	}
	w.add(col+" = ?", scope.CompanyID)
}

// assignedProject reduce a registros cuyo proyecto tiene una tarea asignada al usuario.
func (w *where) assignedProject(scope access.Scope, projectCol string) {
	if !scope.IsNarrowed() {
		return
	}
	w.add("EXISTS (SELECT 1 FROM tasks t WHERE t.project_id = "+projectCol+" AND t.assigned_to = ?)", scope.AssigneeID)
}
