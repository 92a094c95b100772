package entity

import "time"

// Planes de suscripción.
const (
	PlanBasic    = "BASIC"
	PlanPro      = "PRO"
	PlanPlatinum = "PLATINUM"
)

// SeatCaps cupos máximos por rol dentro de una empresa.
type SeatCaps struct {
	MaxAdmins   int
	MaxManagers int
	MaxUsers    int
}

// ForRole devuelve el cupo del rol; 0 para roles que no consumen cupo.
func (c SeatCaps) ForRole(role string) int {
	switch role {
	case RoleAdmin:
		return c.MaxAdmins
	case RoleManager:
		return c.MaxManagers
	case RoleUser:
		return c.MaxUsers
	}
	return 0
}

// Company representa un tenant: la unidad de aislamiento de datos.
type Company struct {
	ID         string
	Name       string
	Plan       string // BASIC, PRO, PLATINUM
	AdminName  string
	AdminEmail string // email del admin principal
	Caps       SeatCaps
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsPrimaryAdmin indica si u es el admin principal de la empresa (email registrado y rol admin).
func (c *Company) IsPrimaryAdmin(u *User) bool {
	return u != nil && u.Email == c.AdminEmail && u.Role == RoleAdmin
}
