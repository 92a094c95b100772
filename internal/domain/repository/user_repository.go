package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas reciben el Scope del principal; un usuario fuera de alcance no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.User, error)
	// GetByEmail sin alcance: solo para login y seed.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateStatus(ctx context.Context, companyID, id, status string) error
	// UpdateStatusExceptUser aplica status a todos los usuarios de la empresa salvo exceptID.
	UpdateStatusExceptUser(ctx context.Context, companyID, exceptID, status string) (int64, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	CountByRole(ctx context.Context, companyID, role string) (int, error)
	// List con scope.AssigneeID != "" devuelve solo ese usuario.
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.User, error)
	// BelongsTo informa si el usuario existe y es de la empresa.
	BelongsTo(ctx context.Context, companyID, id string) (bool, error)
	Delete(ctx context.Context, companyID, id string) error
}
