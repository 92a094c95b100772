package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleUser       = "user"
)

// Estados de User.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

// IsCompanyRole indica si el rol pertenece a una empresa y consume cupo del plan.
func IsCompanyRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}

// User representa un usuario del sistema. Todo usuario salvo el superadmin pertenece a una Company.
type User struct {
	ID           string
	CompanyID    string // "" solo para superadmin
	Name         string
	Email        string
	PasswordHash string   // bcrypt hash
	Role         string   // superadmin, admin, manager, user
	Status       string   // ACTIVE, INACTIVE
	Permissions  []string // lista ordenada, independiente del rol
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status != UserStatusInactive }
