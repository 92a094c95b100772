package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository     = (*projectRepo)(nil)
	_ repository.TaskRepository        = (*taskRepo)(nil)
	_ repository.ResourceRepository    = (*resourceRepo)(nil)
	_ repository.RiskRepository        = (*riskRepo)(nil)
	_ repository.BudgetRepository      = (*budgetRepo)(nil)
	_ repository.ActivityLogRepository = (*activityRepo)(nil)
	_ repository.DashboardRepository   = (*dashboardRepo)(nil)
)

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.companies[p.CompanyID]; !ok {
		return domain.ErrCrossTenantReference
	}
	r.s.d.projects[p.ID] = *p
	return nil
}

func (r *projectRepo) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.projects[id]
	if !ok || !r.s.projectVisible(scope, p.CompanyID, p.ID) {
		return nil, nil
	}
	return &p, nil
}

func (r *projectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.projects[p.ID]
	if !ok || cur.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.projects[p.ID] = *p
	return nil
}

// Delete falla con ErrConflict si el proyecto tiene tareas; riesgos, recursos y
// presupuestos se eliminan en cascada.
func (r *projectRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	p, ok := d.projects[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	for _, t := range d.tasks {
		if t.ProjectID == id {
			return domain.ErrConflict
		}
	}
	delete(d.projects, id)
	for k, v := range d.resources {
		if v.ProjectID == id {
			delete(d.resources, k)
		}
	}
	for k, v := range d.risks {
		if v.ProjectID == id {
			delete(d.risks, k)
		}
	}
	for k, v := range d.budgets {
		if v.ProjectID == id {
			delete(d.budgets, k)
		}
	}
	return nil
}

func (r *projectRepo) List(_ context.Context, scope access.Scope, limit, offset int) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Project
	for _, p := range r.s.d.projects {
		if !r.s.projectVisible(scope, p.CompanyID, p.ID) {
			continue
		}
		p := p
		list = append(list, &p)
	}
	newestFirst(list, func(p *entity.Project) (int64, string) { return p.CreatedAt.UnixNano(), p.ID })
	return paginate(list, limit, offset), nil
}

func (r *projectRepo) Counts(_ context.Context, id string) (entity.ProjectCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c entity.ProjectCounts
	for _, t := range r.s.d.tasks {
		if t.ProjectID == id {
			c.Tasks++
		}
	}
	for _, v := range r.s.d.risks {
		if v.ProjectID == id && v.Status != entity.StatusDeleted {
			c.Risks++
		}
	}
	for _, v := range r.s.d.resources {
		if v.ProjectID == id && v.Status != entity.StatusDeleted {
			c.Resources++
		}
	}
	for _, v := range r.s.d.budgets {
		if v.ProjectID == id {
			c.Budgets++
		}
	}
	return c, nil
}

type taskRepo struct{ s *Store }

func taskVisible(scope access.Scope, t entity.Task) bool {
	return scope.Allows(t.CompanyID) && (!scope.IsNarrowed() || t.AssignedTo == scope.AssigneeID)
}

func (r *taskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.projects[t.ProjectID]; !ok {
		return domain.ErrCrossTenantReference
	}
	r.s.d.tasks[t.ID] = *t
	return nil
}

func (r *taskRepo) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.d.tasks[id]
	if !ok || !taskVisible(scope, t) {
		return nil, nil
	}
	return &t, nil
}

func (r *taskRepo) Update(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.tasks[t.ID]
	if !ok || cur.CompanyID != t.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.tasks[t.ID] = *t
	return nil
}

func (r *taskRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.d.tasks[id]
	if !ok || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.d.tasks, id)
	return nil
}

func (r *taskRepo) List(_ context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Task
	for _, t := range r.s.d.tasks {
		if !taskVisible(scope, t) || (projectID != "" && t.ProjectID != projectID) {
			continue
		}
		t := t
		list = append(list, &t)
	}
	newestFirst(list, func(t *entity.Task) (int64, string) { return t.CreatedAt.UnixNano(), t.ID })
	return paginate(list, limit, offset), nil
}

func (r *taskRepo) CountByProject(_ context.Context, projectID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.d.tasks {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

type resourceRepo struct{ s *Store }

func (r *resourceRepo) Create(_ context.Context, res *entity.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.projects[res.ProjectID]; !ok {
		return domain.ErrCrossTenantReference
	}
	r.s.d.resources[res.ID] = *res
	return nil
}

func (r *resourceRepo) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.d.resources[id]
	if !ok || res.Status == entity.StatusDeleted || !r.s.projectVisible(scope, res.CompanyID, res.ProjectID) {
		return nil, nil
	}
	return &res, nil
}

func (r *resourceRepo) Update(_ context.Context, res *entity.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.resources[res.ID]
	if !ok || cur.CompanyID != res.CompanyID || cur.Status == entity.StatusDeleted {
		return domain.ErrNotFound
	}
	r.s.d.resources[res.ID] = *res
	return nil
}

func (r *resourceRepo) SoftDelete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.d.resources[id]
	if !ok || res.CompanyID != companyID || res.Status == entity.StatusDeleted {
		return domain.ErrNotFound
	}
	res.Status = entity.StatusDeleted
	res.UpdatedAt = time.Now()
	r.s.d.resources[id] = res
	return nil
}

func (r *resourceRepo) List(_ context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Resource
	for _, res := range r.s.d.resources {
		if res.Status == entity.StatusDeleted || !r.s.projectVisible(scope, res.CompanyID, res.ProjectID) {
			continue
		}
		if projectID != "" && res.ProjectID != projectID {
			continue
		}
		res := res
		list = append(list, &res)
	}
	newestFirst(list, func(v *entity.Resource) (int64, string) { return v.CreatedAt.UnixNano(), v.ID })
	return paginate(list, limit, offset), nil
}

type riskRepo struct{ s *Store }

func (r *riskRepo) Create(_ context.Context, rk *entity.Risk) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.projects[rk.ProjectID]; !ok {
		return domain.ErrCrossTenantReference
	}
	r.s.d.risks[rk.ID] = *rk
	return nil
}

func (r *riskRepo) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Risk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rk, ok := r.s.d.risks[id]
	if !ok || rk.Status == entity.StatusDeleted || !scope.Allows(rk.CompanyID) {
		return nil, nil
	}
	return &rk, nil
}

func (r *riskRepo) Update(_ context.Context, rk *entity.Risk) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.risks[rk.ID]
	if !ok || cur.CompanyID != rk.CompanyID || cur.Status == entity.StatusDeleted {
		return domain.ErrNotFound
	}
	r.s.d.risks[rk.ID] = *rk
	return nil
}

func (r *riskRepo) SoftDelete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rk, ok := r.s.d.risks[id]
	if !ok || rk.CompanyID != companyID || rk.Status == entity.StatusDeleted {
		return domain.ErrNotFound
	}
	rk.Status = entity.StatusDeleted
	rk.UpdatedAt = time.Now()
	r.s.d.risks[id] = rk
	return nil
}

func (r *riskRepo) List(_ context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Risk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Risk
	for _, rk := range r.s.d.risks {
		if rk.Status == entity.StatusDeleted || !scope.Allows(rk.CompanyID) {
			continue
		}
		if projectID != "" && rk.ProjectID != projectID {
			continue
		}
		rk := rk
		list = append(list, &rk)
	}
	newestFirst(list, func(v *entity.Risk) (int64, string) { return v.CreatedAt.UnixNano(), v.ID })
	return paginate(list, limit, offset), nil
}

type budgetRepo struct{ s *Store }

func (r *budgetRepo) Create(_ context.Context, b *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.projects[b.ProjectID]; !ok {
		return domain.ErrCrossTenantReference
	}
	r.s.d.budgets[b.ID] = *b
	return nil
}

func (r *budgetRepo) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.d.budgets[id]
	if !ok || !scope.Allows(b.CompanyID) {
		return nil, nil
	}
	return &b, nil
}

func (r *budgetRepo) Update(_ context.Context, b *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.d.budgets[b.ID]
	if !ok || cur.CompanyID != b.CompanyID {
		return domain.ErrNotFound
	}
	r.s.d.budgets[b.ID] = *b
	return nil
}

func (r *budgetRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.d.budgets[id]
	if !ok || b.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.d.budgets, id)
	return nil
}

func (r *budgetRepo) List(_ context.Context, scope access.Scope, projectID string, limit, offset int) ([]*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Budget
	for _, b := range r.s.d.budgets {
		if !scope.Allows(b.CompanyID) || (projectID != "" && b.ProjectID != projectID) {
			continue
		}
		b := b
		list = append(list, &b)
	}
	newestFirst(list, func(v *entity.Budget) (int64, string) { return v.CreatedAt.UnixNano(), v.ID })
	return paginate(list, limit, offset), nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) Append(_ context.Context, l *entity.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.d.logs = append(r.s.d.logs, *l)
	return nil
}

// List recorre la bitácora desde el final: el orden de inserción es el cronológico.
func (r *activityRepo) List(_ context.Context, scope access.Scope, f repository.ActivityFilter, limit, offset int) ([]*entity.ActivityLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.ActivityLog
	for i := len(r.s.d.logs) - 1; i >= 0; i-- {
		l := r.s.d.logs[i]
		if !scope.Allows(l.CompanyID) {
			continue
		}
		if (f.EntityType != "" && l.EntityType != f.EntityType) || (f.EntityID != "" && l.EntityID != f.EntityID) {
			continue
		}
		list = append(list, &l)
	}
	return paginate(list, limit, offset), nil
}

type dashboardRepo struct{ s *Store }

func (r *dashboardRepo) ProjectStatusCounts(_ context.Context, scope access.Scope) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, p := range r.s.d.projects {
		if r.s.projectVisible(scope, p.CompanyID, p.ID) {
			out[p.Status]++
		}
	}
	return out, nil
}

func (r *dashboardRepo) TaskStatusCounts(_ context.Context, scope access.Scope) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, t := range r.s.d.tasks {
		if taskVisible(scope, t) {
			out[t.Status]++
		}
	}
	return out, nil
}
