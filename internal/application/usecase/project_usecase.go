package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

// ErrProjectHasTasks mensaje del conflicto al borrar un proyecto con tareas.
const ErrProjectHasTasks = "Task is assigned with project, can't delete."

// ProjectUseCase CRUD de proyectos con alcance por empresa.
type ProjectUseCase struct {
	repos repository.Repos
	tx    TxRunner
}

// NewProjectUseCase construye el caso de uso con los puertos de persistencia.
func NewProjectUseCase(repos repository.Repos, tx TxRunner) *ProjectUseCase {
	return &ProjectUseCase{repos: repos, tx: tx}
}

// Create crea un proyecto en la empresa del principal (el superadmin indica companyId).
func (uc *ProjectUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if err := access.Can(p, access.ProjectCreate); err != nil {
		return nil, err
	}
	companyID, err := access.WriteCompany(p, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := checkDates(in.StartDate.Time, in.EndDate.Time, "startDate", "endDate"); err != nil {
		return nil, err
	}
	if p.IsSuperadmin() {
		c, err := uc.repos.Companies.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	project := &entity.Project{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		ClientName:     in.ClientName,
		StartDate:      in.StartDate.Time,
		EndDate:        in.EndDate.Time,
		ProjectManager: in.ProjectManager,
		Budget:         in.Budget,
		Status:         orDefault(in.Status, entity.ProjectStatusPlanned),
		PriorityLevel:  in.PriorityLevel,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repos.Projects.Create(ctx, project); err != nil {
		return nil, err
	}
	out := projectToResponse(project)
	return &out, nil
}

// List lista proyectos: admin y manager ven todos los de la empresa; user solo los que
// tienen una tarea asignada a él.
func (uc *ProjectUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.ProjectListResponse, error) {
	scope, err := access.ListScope(p, access.ProjectRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Projects.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, pr := range list {
		items = append(items, projectToResponse(pr))
	}
	return &dto.ProjectListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// detailChildLimit máximo de tareas, riesgos y recursos embebidos en el detalle.
const detailChildLimit = 100

// GetByID obtiene un proyecto con el conteo de sus registros hijos y los que el
// principal puede ver de cada tipo. Sin permiso de recursos la lista va vacía.
func (uc *ProjectUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.ProjectDetailResponse, error) {
	scope, err := access.ListScope(p, access.ProjectRead)
	if err != nil {
		return nil, err
	}
	pr, err := uc.repos.Projects.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	counts, err := uc.repos.Projects.Counts(ctx, pr.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProjectDetailResponse{
		ProjectResponse: projectToResponse(pr),
		Tasks:           []dto.TaskResponse{},
		Risks:           []entity.Risk{},
		Resources:       []dto.ResourceResponse{},
	}
	out.Count = &dto.ProjectCountsResponse{
		Tasks:     counts.Tasks,
		Risks:     counts.Risks,
		Resources: counts.Resources,
		Budgets:   counts.Budgets,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		taskScope, err := access.ListScope(p, access.TaskRead)
		if err != nil {
			return err
		}
		tasks, err := uc.repos.Tasks.List(gctx, taskScope, pr.ID, detailChildLimit, 0)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			out.Tasks = append(out.Tasks, taskToResponse(t))
		}
		return nil
	})
	g.Go(func() error {
		riskScope, err := access.ListScope(p, access.RiskRead)
		if err != nil {
			return err
		}
		risks, err := uc.repos.Risks.List(gctx, riskScope, pr.ID, detailChildLimit, 0)
		if err != nil {
			return err
		}
		for _, rk := range risks {
			out.Risks = append(out.Risks, *rk)
		}
		return nil
	})
	g.Go(func() error {
		resScope, err := access.ListScope(p, access.ResourceRead)
		if err != nil {
			return nil
		}
		resources, err := uc.repos.Resources.List(gctx, resScope, pr.ID, detailChildLimit, 0)
		if err != nil {
			return err
		}
		for _, res := range resources {
			out.Resources = append(out.Resources, resourceToResponse(res))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// projectRef resumen del proyecto padre para el detalle de riesgos y recursos.
func projectRef(ctx context.Context, projects repository.ProjectRepository, p access.Principal, projectID string) (*dto.ProjectRef, error) {
	pr, err := projects.GetByID(ctx, access.TenantScope(p), projectID)
	if err != nil || pr == nil {
		return nil, err
	}
	return &dto.ProjectRef{ID: pr.ID, Name: pr.Name, Status: pr.Status}, nil
}

// Update actualiza un proyecto de la empresa.
func (uc *ProjectUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := access.Can(p, access.ProjectEdit); err != nil {
		return nil, err
	}
	pr, err := uc.repos.Projects.GetByID(ctx, access.TenantScope(p), id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		pr.Name = *in.Name
	}
	if in.ClientName != nil {
		pr.ClientName = *in.ClientName
	}
	if in.StartDate != nil {
		pr.StartDate = in.StartDate.Time
	}
	if in.EndDate != nil {
		pr.EndDate = in.EndDate.Time
	}
	if in.ProjectManager != nil {
		pr.ProjectManager = *in.ProjectManager
	}
	if in.Budget != nil {
		pr.Budget = *in.Budget
	}
	if in.Status != nil {
		pr.Status = *in.Status
	}
	if in.PriorityLevel != nil {
		pr.PriorityLevel = *in.PriorityLevel
	}
	if in.Notes != nil {
		pr.Notes = *in.Notes
	}
	if err := checkDates(pr.StartDate, pr.EndDate, "startDate", "endDate"); err != nil {
		return nil, err
	}
	pr.UpdatedAt = time.Now()
	if err := uc.repos.Projects.Update(ctx, pr); err != nil {
		return nil, err
	}
	out := projectToResponse(pr)
	return &out, nil
}

// Delete elimina un proyecto sin tareas. Con tareas devuelve un ConflictError y no borra nada.
func (uc *ProjectUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.ProjectDelete); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		pr, err := r.Projects.GetByID(ctx, access.TenantScope(p), id)
		if err != nil {
			return err
		}
		if pr == nil {
			return domain.ErrNotFound
		}
		n, err := r.Tasks.CountByProject(ctx, pr.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.NewConflictError(ErrProjectHasTasks)
		}
		return r.Projects.Delete(ctx, pr.CompanyID, pr.ID)
	})
}

// resolveProject valida la referencia a un proyecto al escribir un registro hijo y devuelve
// la empresa dueña del registro. Un proyecto inexistente o de otra empresa es ErrCrossTenantReference.
func resolveProject(ctx context.Context, projects repository.ProjectRepository, p access.Principal, projectID string) (*entity.Project, error) {
	project, err := projects.GetByID(ctx, access.TenantScope(p), projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrCrossTenantReference
	}
	owner := p.CompanyID
	if owner == "" && p.IsSuperadmin() {
		owner = project.CompanyID
	}
	if err := access.CheckReference(owner, project.CompanyID); err != nil {
		return nil, err
	}
	return project, nil
}

func projectToResponse(p *entity.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		Name:           p.Name,
		ClientName:     p.ClientName,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		ProjectManager: p.ProjectManager,
		Budget:         p.Budget,
		Status:         p.Status,
		PriorityLevel:  p.PriorityLevel,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
