package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.RiskRepository = (*RiskRepo)(nil)

// RiskRepo implementación del puerto RiskRepository sobre PostgreSQL.
type RiskRepo struct {
	q Querier
}

// NewRiskRepository construye el adaptador de persistencia para riesgos.
func NewRiskRepository(q Querier) *RiskRepo {
	return &RiskRepo{q: q}
}

const riskColumns = `id, company_id, project_id, description, severity_level, mitigation_plan, risk_owner,
	status, created_at, updated_at`

func scanRisk(row pgx.Row) (*entity.Risk, error) {
	var rk entity.Risk
	err := row.Scan(&rk.ID, &rk.CompanyID, &rk.ProjectID, &rk.Description, &rk.SeverityLevel,
		&rk.MitigationPlan, &rk.RiskOwner, &rk.Status, &rk.CreatedAt, &rk.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rk, nil
}

// Create persiste un nuevo riesgo.
func (r *RiskRepo) Create(ctx context.Context, rk *entity.Risk) error {
	query := `
		INSERT INTO risks (` + riskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rk.ID, rk.CompanyID, rk.ProjectID, rk.Description, rk.SeverityLevel,
		rk.MitigationPlan, rk.RiskOwner, rk.Status, rk.CreatedAt, rk.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert risk: %w", err)
	}
	return nil
}

// GetByID obtiene un riesgo vigente dentro del alcance.
func (r *RiskRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Risk, error) {
	var w where
	w.add("id = ?", id)
	w.add("status <> ?", entity.StatusDeleted)
	w.tenant(scope, "company_id")
	rk, err := scanRisk(r.q.QueryRow(ctx, `SELECT `+riskColumns+` FROM risks`+w.String(), w.args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get risk: %w", err)
	}
	return rk, nil
}

// Update actualiza un riesgo vigente.
func (r *RiskRepo) Update(ctx context.Context, rk *entity.Risk) error {
	query := `
		UPDATE risks
		SET project_id = $3, description = $4, severity_level = $5, mitigation_plan = $6,
		    risk_owner = $7, status = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2 AND status <> 'DELETED'`
	tag, err := r.q.Exec(ctx, query,
		rk.ID, rk.CompanyID, rk.ProjectID, rk.Description, rk.SeverityLevel,
		rk.MitigationPlan, rk.RiskOwner, rk.Status, rk.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update risk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el riesgo como DELETED.
func (r *RiskRepo) SoftDelete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE risks SET status = 'DELETED', updated_at = now() WHERE id = $1 AND company_id = $2 AND status <> 'DELETED'`,
		id, companyID)
	if err != nil {
		return fmt.Errorf("soft delete risk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista riesgos vigentes del alcance.
func (r *RiskRepo) List(ctx context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Risk, error) {
	var w where
	w.add("status <> ?", entity.StatusDeleted)
	w.tenant(scope, "company_id")
	if projectID != "" {
		w.add("project_id = ?", projectID)
	}
	query := `SELECT ` + riskColumns + ` FROM risks` + w.String() +
		` ORDER BY created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list risks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Risk
	for rows.Next() {
		rk, err := scanRisk(rows)
		if err != nil {
			return nil, fmt.Errorf("scan risk: %w", err)
		}
		list = append(list, rk)
	}
	return list, rows.Err()
}
