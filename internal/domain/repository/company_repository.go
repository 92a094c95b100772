package repository

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Los Get devuelven (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción; serializa altas de usuarios
	// y cambios de plan de una misma empresa.
	GetForUpdate(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, includeInactive bool, limit, offset int) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
}
