package access

import (
	"github.com/jhoicas/Proyectos-api/internal/domain"
)

// Scope filtro de datos que todo acceso a entidades de una empresa debe aplicar.
//
//   - AllCompanies: solo superadmin; sin filtro por empresa.
//   - CompanyID: company_id = CompanyID.
//   - AssigneeID: además, solo registros asignados a ese usuario (o cuyo proyecto
//     tiene una tarea asignada a él, para recursos y proyectos).
type Scope struct {
	CompanyID    string
	AllCompanies bool
	AssigneeID   string
}

// TenantScope alcance base del principal: su empresa, o todas para el superadmin.
func TenantScope(p Principal) Scope {
	if p.IsSuperadmin() {
		return Scope{CompanyID: p.CompanyID, AllCompanies: p.CompanyID == ""}
	}
	return Scope{CompanyID: p.CompanyID}
}

// ForCompany limita un alcance de superadmin a una empresa concreta.
// Para otros principales no cambia nada: nunca se amplía el alcance.
func (s Scope) ForCompany(companyID string) Scope {
	if s.AllCompanies && companyID != "" {
		return Scope{CompanyID: companyID, AssigneeID: s.AssigneeID}
	}
	return s
}

// SelfNarrowed restringe el alcance a lo asignado al usuario.
func (s Scope) SelfNarrowed(userID string) Scope {
	s.AssigneeID = userID
	return s
}

// IsNarrowed indica si hay filtro por asignación.
func (s Scope) IsNarrowed() bool { return s.AssigneeID != "" }

// Allows indica si un registro de la empresa companyID es visible en este alcance.
// Un principal sin empresa (y que no es superadmin) no ve nada.
func (s Scope) Allows(companyID string) bool {
	if s.AllCompanies {
		return true
	}
	return s.CompanyID != "" && s.CompanyID == companyID
}

// Visible convierte un registro fuera de alcance en ErrNotFound, igual que si no existiera.
func (s Scope) Visible(companyID string) error {
	if !s.Allows(companyID) {
		return domain.ErrNotFound
	}
	return nil
}

// CheckReference valida una clave foránea en escritura: el registro padre (p. ej. el
// proyecto de una tarea) debe existir y pertenecer a la empresa del registro que se escribe.
// parentCompanyID == "" significa que el padre no existe.
func CheckReference(ownerCompanyID, parentCompanyID string) error {
	if parentCompanyID == "" || ownerCompanyID == "" || parentCompanyID != ownerCompanyID {
		return domain.ErrCrossTenantReference
	}
	return nil
}

// WriteCompany decide a qué empresa pertenece un registro nuevo: la del principal;
// el superadmin (sin empresa) debe indicarla explícitamente.
func WriteCompany(p Principal, requested string) (string, error) {
	if p.CompanyID != "" {
		return p.CompanyID, nil
	}
	if p.IsSuperadmin() && requested != "" {
		return requested, nil
	}
	return "", domain.NewValidationError("companyId es requerido", "companyId")
}
