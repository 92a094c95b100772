package usecase

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda aplicado ningún cambio hecho dentro de fn.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
