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

// Acciones registradas en la bitácora para riesgos.
const (
	ActionRiskCreated = "Created risk"
	ActionRiskUpdated = "Updated risk"
	ActionRiskDeleted = "Deleted risk"
)

// RiskUseCase CRUD de riesgos. Cada mutación y su registro en la bitácora van en la misma transacción.
type RiskUseCase struct {
	repos repository.Repos
	tx    TxRunner
}

// NewRiskUseCase construye el caso de uso con los puertos de persistencia.
func NewRiskUseCase(repos repository.Repos, tx TxRunner) *RiskUseCase {
	return &RiskUseCase{repos: repos, tx: tx}
}

// Create crea un riesgo en el proyecto indicado.
func (uc *RiskUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateRiskRequest) (*entity.Risk, error) {
	if err := access.Can(p, access.RiskWrite); err != nil {
		return nil, err
	}
	var risk *entity.Risk
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		project, err := resolveProject(ctx, r.Projects, p, in.ProjectID)
		if err != nil {
			return err
		}
		now := time.Now()
		risk = &entity.Risk{
			ID:             uuid.New().String(),
			CompanyID:      project.CompanyID,
			ProjectID:      project.ID,
			Description:    in.Description,
			SeverityLevel:  in.SeverityLevel,
			MitigationPlan: in.MitigationPlan,
			RiskOwner:      in.RiskOwner,
			Status:         orDefault(in.Status, "OPEN"),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Risks.Create(ctx, risk); err != nil {
			return err
		}
		return logActivity(ctx, r, risk.CompanyID, entity.EntityRisk, risk.ID, ActionRiskCreated, nil, risk)
	})
	if err != nil {
		return nil, err
	}
	return risk, nil
}

// List lista riesgos vigentes de la empresa, opcionalmente de un proyecto.
func (uc *RiskUseCase) List(ctx context.Context, p access.Principal, projectID string, page dto.PageRequest) (*dto.RiskListResponse, error) {
	scope, err := access.ListScope(p, access.RiskRead)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repos.Risks.List(ctx, scope, projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]entity.Risk, 0, len(list))
	for _, rk := range list {
		items = append(items, *rk)
	}
	return &dto.RiskListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene un riesgo vigente con su proyecto.
func (uc *RiskUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.RiskDetailResponse, error) {
	scope, err := access.ListScope(p, access.RiskRead)
	if err != nil {
		return nil, err
	}
	rk, err := uc.repos.Risks.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if rk == nil {
		return nil, domain.ErrNotFound
	}
	ref, err := projectRef(ctx, uc.repos.Projects, p, rk.ProjectID)
	if err != nil {
		return nil, err
	}
	return &dto.RiskDetailResponse{Risk: *rk, Project: ref}, nil
}

// Update actualiza un riesgo vigente y registra el antes y el después.
func (uc *RiskUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateRiskRequest) (*entity.Risk, error) {
	if err := access.Can(p, access.RiskWrite); err != nil {
		return nil, err
	}
	var risk *entity.Risk
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		rk, err := r.Risks.GetByID(ctx, access.TenantScope(p), id)
		if err != nil {
			return err
		}
		if rk == nil {
			return domain.ErrNotFound
		}
		before := *rk
		if in.Description != nil {
			rk.Description = *in.Description
		}
		if in.SeverityLevel != nil {
			rk.SeverityLevel = *in.SeverityLevel
		}
		if in.MitigationPlan != nil {
			rk.MitigationPlan = *in.MitigationPlan
		}
		if in.RiskOwner != nil {
			rk.RiskOwner = *in.RiskOwner
		}
		if in.Status != nil {
			rk.Status = *in.Status
		}
		rk.UpdatedAt = time.Now()
		if err := r.Risks.Update(ctx, rk); err != nil {
			return err
		}
		risk = rk
		return logActivity(ctx, r, rk.CompanyID, entity.EntityRisk, rk.ID, ActionRiskUpdated, before, rk)
	})
	if err != nil {
		return nil, err
	}
	return risk, nil
}

// Delete marca el riesgo como DELETED y lo registra en la bitácora.
func (uc *RiskUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Can(p, access.RiskWrite); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		rk, err := r.Risks.GetByID(ctx, access.TenantScope(p), id)
		if err != nil {
			return err
		}
		if rk == nil {
			return domain.ErrNotFound
		}
		if err := r.Risks.SoftDelete(ctx, rk.CompanyID, rk.ID); err != nil {
			return err
		}
		after := *rk
		after.Status = entity.StatusDeleted
		return logActivity(ctx, r, rk.CompanyID, entity.EntityRisk, rk.ID, ActionRiskDeleted, rk, after)
	})
}
