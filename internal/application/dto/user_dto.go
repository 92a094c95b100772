package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// CompanyID solo lo usa el superadmin; para el resto se toma la empresa del token.
type CreateUserRequest struct {
	CompanyID   string   `json:"companyId" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        string   `json:"role" validate:"required,oneof=admin manager user"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required,max=100"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Password    *string   `json:"password" validate:"omitempty,min=6"`
	Role        *string   `json:"role" validate:"omitempty,oneof=admin manager user"`
	Status      *string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Permissions *[]string `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string     `json:"id"`
	CompanyID   *string    `json:"companyId"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	Permissions []string   `json:"permissions"`
	LastLogin   *time.Time `json:"lastLogin"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse principal resuelto desde el token.
type MeResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	CompanyID   *string  `json:"companyId"`
	Permissions []string `json:"permissions"`
}
