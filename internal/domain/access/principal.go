// Package access concentra las reglas de autorización y aislamiento multi-tenant:
// el principal de cada petición, la política de acciones, el alcance de datos
// (Scope) y los cupos por plan.
//
// No depende de HTTP ni de la base de datos; los use cases lo consultan antes de
// tocar los repositorios.
package access

import (
	"encoding/json"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// Principal identidad autenticada de una petición. Se construye desde un token verificado
// y no se modifica. CompanyID es "" solo para el superadmin.
type Principal struct {
	UserID      string
	Email       string
	Role        string
	CompanyID   string
	Permissions Permissions
}

// IsSuperadmin indica si el principal es superadmin.
func (p Principal) IsSuperadmin() bool { return p.Role == entity.RoleSuperadmin }

// IsAdmin indica si el principal es admin de su empresa.
func (p Principal) IsAdmin() bool { return p.Role == entity.RoleAdmin }

// IsPrivileged admin o superadmin.
func (p Principal) IsPrivileged() bool { return p.IsAdmin() || p.IsSuperadmin() }

// Has informa si el principal tiene el permiso (igualdad exacta, sensible a mayúsculas).
func (p Principal) Has(perm string) bool { return p.Permissions.Has(perm) }

// PermissionsDecode resultado de decodificar el campo de permisos.
type PermissionsDecode int

const (
	// PermissionsDecoded el campo se leyó como lista (o estaba vacío).
	PermissionsDecoded PermissionsDecode = iota
	// PermissionsRejected el campo no era una lista válida; se trata como "sin permisos".
	PermissionsRejected
)

// Permissions lista canónica y ordenada de permisos.
type Permissions []string

// Has membresía exacta.
func (ps Permissions) Has(perm string) bool {
	for _, p := range ps {
		if p == perm {
			return true
		}
	}
	return false
}

// DecodePermissions acepta las dos representaciones almacenadas: una lista JSON
// (["Create Projects"]) o esa misma lista codificada dentro de un string JSON
// ("[\"Create Projects\"]"). Cualquier otra forma devuelve una lista vacía y
// PermissionsRejected: nunca se conceden permisos ante un valor ilegible.
func DecodePermissions(raw []byte) (Permissions, PermissionsDecode) {
	if len(raw) == 0 || string(raw) == "null" {
		return Permissions{}, PermissionsDecoded
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return normalize(list), PermissionsDecoded
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return Permissions{}, PermissionsRejected
	}
	if encoded == "" {
		return Permissions{}, PermissionsDecoded
	}
	if err := json.Unmarshal([]byte(encoded), &list); err != nil {
		return Permissions{}, PermissionsRejected
	}
	return normalize(list), PermissionsDecoded
}

func normalize(list []string) Permissions {
	out := make(Permissions, 0, len(list))
	for _, p := range list {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
