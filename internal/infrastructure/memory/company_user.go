package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository = (*companyRepo)(nil)
	_ repository.UserRepository    = (*userRepo)(nil)
)

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *companyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return r.GetByID(ctx, id)
}

func (r *companyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.companies[c.ID] = *c
	return nil
}

func (r *companyRepo) List(_ context.Context, includeInactive bool, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Company
	for _, c := range r.s.d.companies {
		if !includeInactive && !c.IsActive {
			continue
		}
		c := c
		list = append(list, &c)
	}
	newestFirst(list, func(c *entity.Company) (int64, string) { return c.CreatedAt.UnixNano(), c.ID })
	return paginate(list, limit, offset), nil
}

// Delete elimina la empresa y en cascada todos sus registros.
func (r *companyRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.d
	if _, ok := d.companies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(d.companies, id)
	for k, v := range d.users {
		if v.CompanyID == id {
			delete(d.users, k)
		}
	}
	for k, v := range d.projects {
		if v.CompanyID == id {
			delete(d.projects, k)
		}
	}
	for k, v := range d.tasks {
		if v.CompanyID == id {
			delete(d.tasks, k)
		}
	}
	for k, v := range d.resources {
		if v.CompanyID == id {
			delete(d.resources, k)
		}
	}
	for k, v := range d.risks {
		if v.CompanyID == id {
			delete(d.risks, k)
		}
	}
	for k, v := range d.budgets {
		if v.CompanyID == id {
			delete(d.budgets, k)
		}
	}
	logs := d.logs[:0]
	for _, l := range d.logs {
		if l.CompanyID != id {
			logs = append(logs, l)
		}
	}
	d.logs = logs
	return nil
}

type userRepo struct{ s *Store }

func copyUser(u entity.User) *entity.User {
	u.Permissions = append([]string{}, u.Permissions...)
	return &u
}

func (r *userRepo) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.d.users {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return domain.ErrEmailAlreadyExists
	}
	r.s.d.users[u.ID] = *copyUser(*u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, scope access.Scope, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok || !scope.Allows(u.CompanyID) || (scope.IsNarrowed() && u.ID != scope.AssigneeID) {
		return nil, nil
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.d.users[u.ID] = *copyUser(*u)
	return nil
}

func (r *userRepo) UpdateStatus(_ context.Context, companyID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	r.s.d.users[id] = u
	return nil
}

func (r *userRepo) UpdateStatusExceptUser(_ context.Context, companyID, exceptID, status string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, u := range r.s.d.users {
		if u.CompanyID != companyID || id == exceptID {
			continue
		}
		u.Status = status
		u.UpdatedAt = time.Now()
		r.s.d.users[id] = u
		n++
	}
	return n, nil
}

func (r *userRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLogin = &at
	r.s.d.users[id] = u
	return nil
}

func (r *userRepo) CountByRole(_ context.Context, companyID, role string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, u := range r.s.d.users {
		if u.CompanyID == companyID && u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *userRepo) List(_ context.Context, scope access.Scope, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.d.users {
		if !scope.Allows(u.CompanyID) || (scope.IsNarrowed() && u.ID != scope.AssigneeID) {
			continue
		}
		list = append(list, copyUser(u))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return paginate(list, limit, offset), nil
}

func (r *userRepo) BelongsTo(_ context.Context, companyID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	return ok && u.CompanyID == companyID, nil
}

// Delete elimina el usuario; sus tareas quedan sin asignar.
func (r *userRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.d.users, id)
	for k, t := range r.s.d.tasks {
		if t.AssignedTo == id {
			t.AssignedTo = ""
			r.s.d.tasks[k] = t
		}
	}
	return nil
}
