package usecase

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// PasswordCost costo de bcrypt; los tests lo bajan a bcrypt.MinCost.
var PasswordCost = bcrypt.DefaultCost

// HashPassword genera el hash bcrypt de la contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail minúsculas y sin espacios; los emails se comparan así en todo el sistema.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkDates(start, end time.Time, fields ...string) error {
	if end.Before(start) {
		return domain.NewValidationError("la fecha de fin es anterior a la de inicio", fields...)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// UserToResponse convierte la entidad a DTO (sin password).
func UserToResponse(u *entity.User) dto.UserResponse {
	var companyID *string
	if u.CompanyID != "" {
		id := u.CompanyID
		companyID = &id
	}
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return dto.UserResponse{
		ID:          u.ID,
		CompanyID:   companyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		Permissions: perms,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func companyToResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Plan:        c.Plan,
		AdminName:   c.AdminName,
		AdminEmail:  c.AdminEmail,
		MaxAdmins:   c.Caps.MaxAdmins,
		MaxManagers: c.Caps.MaxManagers,
		MaxUsers:    c.Caps.MaxUsers,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
