package access

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// planLimits topes duros por plan. Inmutable después del arranque.
var planLimits = map[string]entity.SeatCaps{
	entity.PlanBasic:    {MaxAdmins: 2, MaxManagers: 5, MaxUsers: 15},
	entity.PlanPro:      {MaxAdmins: 5, MaxManagers: 8, MaxUsers: 20},
	entity.PlanPlatinum: {MaxAdmins: 7, MaxManagers: 10, MaxUsers: 25},
}

var upper = cases.Upper(language.Und)

// PlanCeiling devuelve los topes del plan.
func PlanCeiling(plan string) (entity.SeatCaps, bool) {
	caps, ok := planLimits[plan]
	return caps, ok
}

// NormalizePlan pasa el nombre del plan a mayúsculas y lo valida.
// Un plan vacío se interpreta como BASIC.
func NormalizePlan(plan string) (string, error) {
	p := upper.String(strings.TrimSpace(plan))
	if p == "" {
		return entity.PlanBasic, nil
	}
	if _, ok := planLimits[p]; !ok {
		return "", domain.NewValidationError("Invalid plan. Must be BASIC, PRO, or PLATINUM", "plan")
	}
	return p, nil
}

// EffectiveCaps cupo efectivo por rol = min(cupo solicitado, tope del plan).
// Un cupo solicitado <= 0 significa "sin indicar" y toma el tope del plan.
func EffectiveCaps(plan string, requested entity.SeatCaps) entity.SeatCaps {
	ceiling := planLimits[plan]
	return entity.SeatCaps{
		MaxAdmins:   clamp(requested.MaxAdmins, ceiling.MaxAdmins),
		MaxManagers: clamp(requested.MaxManagers, ceiling.MaxManagers),
		MaxUsers:    clamp(requested.MaxUsers, ceiling.MaxUsers),
	}
}

func clamp(requested, ceiling int) int {
	if requested <= 0 || requested > ceiling {
		return ceiling
	}
	return requested
}

// SeatLimitError cupo agotado. errors.Is(err, domain.ErrSeatLimitExceeded) es true.
type SeatLimitError struct {
	Role    string
	Limit   int
	Current int
}

func (e *SeatLimitError) Error() string {
	return fmt.Sprintf("Seat limit reached for role %s: maximum %d allowed", e.Role, e.Limit)
}

// Is permite errors.Is(err, domain.ErrSeatLimitExceeded).
func (e *SeatLimitError) Is(target error) bool { return target == domain.ErrSeatLimitExceeded }

// CheckSeat valida que haya cupo para un usuario más del rol indicado.
// El cupo se recalcula con EffectiveCaps, así una empresa con cupos guardados por
// encima del plan (datos antiguos) tampoco los supera. Solo se aplica al crear:
// los usuarios que ya exceden un cupo reducido se conservan.
func CheckSeat(c *entity.Company, role string, current int) error {
	if !entity.IsCompanyRole(role) {
		return domain.NewValidationError("rol inválido para una empresa", "role")
	}
	limit := EffectiveCaps(c.Plan, c.Caps).ForRole(role)
	if current >= limit {
		return &SeatLimitError{Role: role, Limit: limit, Current: current}
	}
	return nil
}
