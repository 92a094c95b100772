package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa junto con su primer admin.
// Cupos en 0 o ausentes toman el tope del plan.
type CreateCompanyRequest struct {
	Name          string `json:"companyName" validate:"required,min=1,max=200"`
	Plan          string `json:"plan" validate:"omitempty,max=20"`
	AdminName     string `json:"adminName" validate:"required,min=1,max=200"`
	AdminEmail    string `json:"adminEmail" validate:"required,email"`
	AdminPassword string `json:"adminPassword" validate:"required,min=6"`
	MaxAdmins     int    `json:"maxAdmins" validate:"min=0"`
	MaxManagers   int    `json:"maxManagers" validate:"min=0"`
	MaxUsers      int    `json:"maxUsers" validate:"min=0"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name        *string `json:"companyName" validate:"omitempty,min=1,max=200"`
	Plan        *string `json:"plan" validate:"omitempty,max=20"`
	AdminName   *string `json:"adminName" validate:"omitempty,min=1,max=200"`
	AdminEmail  *string `json:"adminEmail" validate:"omitempty,email"`
	MaxAdmins   *int    `json:"maxAdmins" validate:"omitempty,min=0"`
	MaxManagers *int    `json:"maxManagers" validate:"omitempty,min=0"`
	MaxUsers    *int    `json:"maxUsers" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"isActive"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"companyName"`
	Plan        string    `json:"plan"`
	AdminName   string    `json:"adminName"`
	AdminEmail  string    `json:"adminEmail"`
	MaxAdmins   int       `json:"maxAdmins"`
	MaxManagers int       `json:"maxManagers"`
	MaxUsers    int       `json:"maxUsers"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCompanyResponse empresa creada y su admin inicial.
type CreateCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SeatUsage cupo y ocupación de un rol.
type SeatUsage struct {
	Limit   int `json:"limit"`
	Ceiling int `json:"ceiling"`
	Used    int `json:"used"`
}

// CompanyPlanResponse plan vigente de la empresa con ocupación por rol.
type CompanyPlanResponse struct {
	CompanyID string    `json:"companyId"`
	Plan      string    `json:"plan"`
	Admins    SeatUsage `json:"admins"`
	Managers  SeatUsage `json:"managers"`
	Users     SeatUsage `json:"users"`
}

// ToggleUserStatusRequest nuevo estado de un usuario.
type ToggleUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

// ToggleUserStatusResponse resultado del cambio; Cascaded indica que era el admin principal.
type ToggleUserStatusResponse struct {
	User          UserResponse `json:"user"`
	Cascaded      bool         `json:"cascaded"`
	AffectedUsers int64        `json:"affectedUsers"`
}
