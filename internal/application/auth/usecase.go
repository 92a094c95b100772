package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
	"github.com/jhoicas/Proyectos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// LoginThrottle cuenta intentos fallidos de login por email.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthUseCase casos de uso de autenticación: login, principal actual y seed del superadmin.
type AuthUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	jwtCfg    JWTConfig
	throttle  LoginThrottle
}

// NewAuthUseCase construye el caso de uso de auth. throttle puede ser nil (sin límite de intentos).
func NewAuthUseCase(users repository.UserRepository, companies repository.CompanyRepository, jwtCfg JWTConfig, throttle LoginThrottle) *AuthUseCase {
	return &AuthUseCase{users: users, companies: companies, jwtCfg: jwtCfg, throttle: throttle}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := usecase.NormalizeEmail(in.Email)
	if uc.throttle != nil {
		// Si el contador no responde se permite el intento: el límite es una protección adicional.
		if ok, err := uc.throttle.Allow(ctx, email); err == nil && !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		if uc.throttle != nil {
			_ = uc.throttle.Fail(ctx, email)
		}
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrInactiveAccount
	}
	if user.Role != entity.RoleSuperadmin {
		if user.CompanyID == "" {
			return nil, domain.ErrInactiveCompany
		}
		company, err := uc.companies.GetByID(ctx, user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil || !company.IsActive {
			return nil, domain.ErrInactiveCompany
		}
	}
	if uc.throttle != nil {
		_ = uc.throttle.Reset(ctx, email)
	}
	now := time.Now()
	if err := uc.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Subject{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		CompanyID:   user.CompanyID,
		Permissions: user.Permissions,
	}, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: usecase.UserToResponse(user)}, nil
}

// Me devuelve el principal de la petición.
func (uc *AuthUseCase) Me(p access.Principal) dto.MeResponse {
	var companyID *string
	if p.CompanyID != "" {
		id := p.CompanyID
		companyID = &id
	}
	perms := []string(p.Permissions)
	if perms == nil {
		perms = []string{}
	}
	return dto.MeResponse{ID: p.UserID, Email: p.Email, Role: p.Role, CompanyID: companyID, Permissions: perms}
}

// EnsureSuperadmin crea el superadmin si no existe un usuario con ese email. Idempotente:
// devuelve created=false si ya existía.
func (uc *AuthUseCase) EnsureSuperadmin(ctx context.Context, email, password, name string) (bool, error) {
	email = usecase.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, domain.NewValidationError("email y password del superadmin son requeridos", "email", "password")
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := usecase.HashPassword(password)
	if err != nil {
		return false, err
	}
	now := time.Now()
	err = uc.users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleSuperadmin,
		Status:       entity.UserStatusActive,
		Permissions:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
