// Package memory implementa los puertos de persistencia en memoria. Aplica los mismos
// filtros de alcance y las mismas reglas de integridad que las consultas de postgres.
// Solo lo usan los tests de casos de uso y de HTTP; el binario siempre va contra postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*Store)(nil)

type data struct {
	companies map[string]entity.Company
	users     map[string]entity.User
	projects  map[string]entity.Project
	tasks     map[string]entity.Task
	resources map[string]entity.Resource
	risks     map[string]entity.Risk
	budgets   map[string]entity.Budget
	logs      []entity.ActivityLog
}

func newData() *data {
	return &data{
		companies: map[string]entity.Company{},
		users:     map[string]entity.User{},
		projects:  map[string]entity.Project{},
		tasks:     map[string]entity.Task{},
		resources: map[string]entity.Resource{},
		risks:     map[string]entity.Risk{},
		budgets:   map[string]entity.Budget{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.users {
		v.Permissions = append([]string(nil), v.Permissions...)
		c.users[k] = v
	}
	for k, v := range d.projects {
		c.projects[k] = v
	}
	for k, v := range d.tasks {
		c.tasks[k] = v
	}
	for k, v := range d.resources {
		c.resources[k] = v
	}
	for k, v := range d.risks {
		c.risks[k] = v
	}
	for k, v := range d.budgets {
		c.budgets[k] = v
	}
	c.logs = append([]entity.ActivityLog(nil), d.logs...)
	return c
}

// Store datos en memoria. Las transacciones se serializan: Run toma un lock exclusivo,
// que equivale al SELECT ... FOR UPDATE sobre la empresa en postgres.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	d    *data
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// Repos devuelve los repositorios respaldados por el store.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Companies: &companyRepo{s},
		Users:     &userRepo{s},
		Projects:  &projectRepo{s},
		Tasks:     &taskRepo{s},
		Resources: &resourceRepo{s},
		Risks:     &riskRepo{s},
		Budgets:   &budgetRepo{s},
		Activity:  &activityRepo{s},
		Dashboard: &dashboardRepo{s},
	}
}

// Run ejecuta fn; si devuelve error (o entra en panic) el store vuelve al estado previo.
func (s *Store) Run(_ context.Context, fn func(repos repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	committed := false
	defer func() {
		if !committed {
			s.mu.Lock()
			s.d = snapshot
			s.mu.Unlock()
		}
	}()
	if err := fn(s.Repos()); err != nil {
		return err
	}
	committed = true
	return nil
}

// assignedTo indica si el proyecto tiene alguna tarea asignada al usuario. Requiere s.mu.
func (s *Store) assignedTo(projectID, userID string) bool {
	for _, t := range s.d.tasks {
		if t.ProjectID == projectID && t.AssignedTo == userID {
			return true
		}
	}
	return false
}

// projectVisible aplica el alcance a un proyecto, incluida la reducción por asignación. Requiere s.mu.
func (s *Store) projectVisible(scope access.Scope, companyID, projectID string) bool {
	if !scope.Allows(companyID) {
		return false
	}
	return !scope.IsNarrowed() || s.assignedTo(projectID, scope.AssigneeID)
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// newestFirst ordena por fecha de creación descendente, con el ID como desempate.
func newestFirst[T any](list []T, key func(T) (int64, string)) {
	sort.Slice(list, func(i, j int) bool {
		ti, idi := key(list[i])
		tj, idj := key(list[j])
		if ti != tj {
			return ti > tj
		}
		return idi < idj
	})
}
