package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// Orden y etiquetas fijas de los gráficos del dashboard.
var (
	projectStatusLabels = []struct{ status, name string }{
		{entity.ProjectStatusPlanned, "Planned"},
		{entity.ProjectStatusActive, "Active"},
		{entity.ProjectStatusCompleted, "Completed"},
		{entity.ProjectStatusOnHold, "On Hold"},
	}
	taskStatusLabels = []struct{ status, name string }{
		{entity.TaskStatusPending, "Pending"},
		{entity.TaskStatusInProgress, "In Progress"},
		{entity.TaskStatusCompleted, "Completed"},
	}
)

// DashboardUseCase conteos por estado con el mismo alcance que los listados.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// ProjectStatus cantidad de proyectos por estado.
func (uc *DashboardUseCase) ProjectStatus(ctx context.Context, p access.Principal) ([]dto.StatusCount, error) {
	scope, err := access.ListScope(p, access.ProjectRead)
	if err != nil {
		return nil, err
	}
	counts, err := uc.repo.ProjectStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	return toStatusCounts(counts, projectStatusLabels), nil
}

// TaskStatus cantidad de tareas por estado.
func (uc *DashboardUseCase) TaskStatus(ctx context.Context, p access.Principal) ([]dto.StatusCount, error) {
	scope, err := access.ListScope(p, access.TaskRead)
	if err != nil {
		return nil, err
	}
	counts, err := uc.repo.TaskStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	return toStatusCounts(counts, taskStatusLabels), nil
}

// Summary ambos conteos en paralelo.
func (uc *DashboardUseCase) Summary(ctx context.Context, p access.Principal) (*dto.DashboardSummary, error) {
	if err := access.Can(p, access.DashboardRead); err != nil {
		return nil, err
	}
	var out dto.DashboardSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Projects, err = uc.ProjectStatus(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		out.Tasks, err = uc.TaskStatus(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func toStatusCounts(counts map[string]int, labels []struct{ status, name string }) []dto.StatusCount {
	out := make([]dto.StatusCount, 0, len(labels))
	for _, l := range labels {
		out = append(out, dto.StatusCount{Name: l.name, Value: counts[l.status]})
	}
	return out
}
