package usecase

import (
	"context"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// ActivityUseCase lectura de la bitácora. No hay operaciones de escritura públicas.
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List lista la bitácora de la empresa del principal, más reciente primero.
func (uc *ActivityUseCase) List(ctx context.Context, p access.Principal, f repository.ActivityFilter, page dto.PageRequest) (*dto.ActivityLogListResponse, error) {
	scope, err := access.ListScope(p, access.ActivityRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, scope, f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.ActivityLogResponse{
			ID:         l.ID,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Action:     l.Action,
			OldValue:   l.OldValue,
			NewValue:   l.NewValue,
			Timestamp:  l.CreatedAt,
		})
	}
	return &dto.ActivityLogListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
