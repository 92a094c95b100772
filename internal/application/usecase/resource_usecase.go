package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// ResourceUseCase CRUD de recursos con borrado lógico.
type ResourceUseCase struct {
	repos repository.Repos
}

// NewResourceUseCase construye el caso de uso con los puertos de persistencia.
func NewResourceUseCase(repos repository.Repos) *ResourceUseCase {
	return &ResourceUseCase{repos: repos}
}

// Create crea un recurso en el proyecto indicado.
func (uc *ResourceUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	if err := access.Can(p, access.ResourceManage); err != nil {
		return nil, err
	}
	if err := checkDates(in.AllocationStart.Time, in.AllocationEnd.Time, "allocationStart", "allocationEnd"); err != nil {
		return nil, err
	}
	project, err := resolveProject(ctx, uc.repos.Projects, p, in.ProjectID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	res := &entity.Resource{
		ID:              uuid.New().String(),
		CompanyID:       project.CompanyID,
		ProjectID:       project.ID,
		ResourceType:    in.ResourceType,
		AssignedProject: orDefault(in.AssignedProject, project.Name),
		AllocationStart: in.AllocationStart.Time,
		AllocationEnd:   in.AllocationEnd.Time,
		UtilizationRate: in.UtilizationRate,
		Status:          orDefault(in.Status, "ACTIVE"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repos.Resources.Create(ctx, res); err != nil {
		return nil, err
	}
	out := resourceToResponse(res)
	return &out, nil
}

// List lista recursos vigentes. Quien no es admin solo ve los de proyectos con una tarea suya.
func (uc *ResourceUseCase) List(ctx context.Context, p access.Principal, projectID string, page dto.PageRequest) (*dto.ResourceListResponse, error) {
	scope, err := access.ListScope(p, access.ResourceRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Resources.List(ctx, scope, projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResourceResponse, 0, len(list))
	for _, r := range list {
		items = append(items, resourceToResponse(r))
	}
	return &dto.ResourceListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene un recurso vigente visible para el principal.
func (uc *ResourceUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ResourceResponse, error) {
	scope, err := access.ListScope(p, access.ResourceRead)
	if err != nil {
		return nil, err
	}
	res, err := uc.repos.Resources.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	out := resourceToResponse(res)
	if out.Project, err = projectRef(ctx, uc.repos.Projects, p, res.ProjectID); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update actualiza un recurso vigente.
func (uc *ResourceUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	if err := access.Can(p, access.ResourceManage); err != nil {
		return nil, err
	}
	res, err := uc.repos.Resources.GetByID(ctx, access.TenantScope(p), id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProjectID != nil && *in.ProjectID != res.ProjectID {
		project, err := resolveProject(ctx, uc.repos.Projects, p, *in.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := access.CheckReference(res.CompanyID, project.CompanyID); err != nil {
			return nil, err
		}
		res.ProjectID = project.ID
	}
	if in.ResourceType != nil {
		res.ResourceType = *in.ResourceType
	}
	if in.AssignedProject != nil {
		res.AssignedProject = *in.AssignedProject
	}
	if in.AllocationStart != nil {
		res.AllocationStart = in.AllocationStart.Time
	}
	if in.AllocationEnd != nil {
		res.AllocationEnd = in.AllocationEnd.Time
	}
	if in.UtilizationRate != nil {
		res.UtilizationRate = *in.UtilizationRate
	}
	if in.Status != nil {
		res.Status = *in.Status
	}
	if err := checkDates(res.AllocationStart, res.AllocationEnd, "allocationStart", "allocationEnd"); err != nil {
		return nil, err
	}
	res.UpdatedAt = time.Now()
	if err := uc.repos.Resources.Update(ctx, res); err != nil {
		return nil, err
	}
	out := resourceToResponse(res)
	return &out, nil
}

// Delete marca el recurso como DELETED.
func (uc *ResourceUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.ResourceManage); err != nil {
		return err
	}
	res, err := uc.repos.Resources.GetByID(ctx, access.TenantScope(p), id)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Resources.SoftDelete(ctx, res.CompanyID, res.ID)
}

func resourceToResponse(r *entity.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		ProjectID:       r.ProjectID,
		ResourceType:    r.ResourceType,
		AssignedProject: r.AssignedProject,
		AllocationStart: r.AllocationStart,
		AllocationEnd:   r.AllocationEnd,
		UtilizationRate: r.UtilizationRate,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
