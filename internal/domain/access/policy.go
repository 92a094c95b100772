package access

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

// Permisos reconocidos. Se comparan por igualdad exacta.
const (
	PermCreateProjects      = "Create Projects"
	PermEditProjects        = "Edit Projects"
	PermDeleteProjects      = "Delete Projects"
	PermAssignTasks         = "Assign Tasks"
	PermCreateBudgets       = "Create Budgets"
	PermEditBudgets         = "Edit Budgets"
	PermDeleteBudgets       = "Delete Budgets"
	PermViewResources       = "View Resources"
	PermManageTeamResources = "Manage Team Resources"
)

// Action acción sobre una entidad.
type Action string

const (
	CompanyCreate Action = "company.create"
	CompanyList   Action = "company.list"
	CompanyUpdate Action = "company.update"
	CompanyDelete Action = "company.delete"
	CompanyPlan   Action = "company.plan.read"
	UserToggle    Action = "user.status.toggle"

	UserCreate Action = "user.create"
	UserManage Action = "user.manage"
	UserRead   Action = "user.read"

	ProjectCreate Action = "project.create"
	ProjectEdit   Action = "project.edit"
	ProjectDelete Action = "project.delete"
	ProjectRead   Action = "project.read"

	TaskCreate Action = "task.create"
	TaskEdit   Action = "task.edit"
	TaskDelete Action = "task.delete"
	TaskRead   Action = "task.read"

	ResourceRead   Action = "resource.read"
	ResourceManage Action = "resource.manage"

	BudgetCreate Action = "budget.create"
	BudgetEdit   Action = "budget.edit"
	BudgetDelete Action = "budget.delete"
	BudgetRead   Action = "budget.read"

	RiskWrite Action = "risk.write"
	RiskRead  Action = "risk.read"

	ActivityRead  Action = "activity.read"
	DashboardRead Action = "dashboard.read"
)

// Códigos estables de denegación.
const (
	ReasonSuperadminOnly     = "SUPERADMIN_ONLY"
	ReasonAdminOnly          = "ADMIN_ONLY"
	ReasonPermissionRequired = "PERMISSION_REQUIRED"
	ReasonNoCompany          = "NO_COMPANY"
	ReasonUnknownAction      = "UNKNOWN_ACTION"
)

// DeniedError denegación con motivo legible por máquina. errors.Is(err, domain.ErrForbidden) es true.
type DeniedError struct {
	Action Action
	Reason string
	Detail string
}

func (e *DeniedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s denegado (%s): %s", e.Action, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s denegado (%s)", e.Action, e.Reason)
}

// Is permite errors.Is(err, domain.ErrForbidden).
func (e *DeniedError) Is(target error) bool { return target == domain.ErrForbidden }

// rule describe quién puede ejecutar una acción.
//   - superadminOnly: solo superadmin.
//   - adminOnly: admin (y superadmin); sin escape por permiso.
//   - anyOf: admin/superadmin siempre; el resto necesita alguno de estos permisos.
//   - member: cualquier usuario con empresa.
type rule struct {
	superadminOnly bool
	adminOnly      bool
	anyOf          []string
	member         bool
}

var rules = map[Action]rule{
	CompanyCreate: {superadminOnly: true},
	CompanyList:   {superadminOnly: true},
	CompanyUpdate: {superadminOnly: true},
	CompanyDelete: {superadminOnly: true},
	UserToggle:    {superadminOnly: true},
	CompanyPlan:   {adminOnly: true},
	UserCreate:    {adminOnly: true},
	UserManage:    {adminOnly: true},
	UserRead:      {member: true},

	ProjectCreate: {anyOf: []string{PermCreateProjects}},
	ProjectEdit:   {anyOf: []string{PermEditProjects}},
	ProjectDelete: {anyOf: []string{PermDeleteProjects}},
	ProjectRead:   {member: true},

	TaskCreate: {anyOf: []string{PermAssignTasks}},
	TaskEdit:   {anyOf: []string{PermAssignTasks}},
	TaskDelete: {adminOnly: true},
	TaskRead:   {member: true},

	ResourceRead:   {anyOf: []string{PermViewResources, PermManageTeamResources}},
	ResourceManage: {anyOf: []string{PermManageTeamResources}},

	BudgetCreate: {anyOf: []string{PermCreateBudgets}},
	BudgetEdit:   {anyOf: []string{PermEditBudgets}},
	BudgetDelete: {anyOf: []string{PermDeleteBudgets}},
	BudgetRead:   {member: true},

	RiskWrite: {member: true},
	RiskRead:  {member: true},

	ActivityRead:  {member: true},
	DashboardRead: {member: true},
}

// Can decide si el principal puede ejecutar la acción. Devuelve nil o *DeniedError.
// El alcance por empresa lo aplica Scope; aquí solo se evalúan rol y permisos.
func Can(p Principal, action Action) error {
	r, ok := rules[action]
	if !ok {
		return &DeniedError{Action: action, Reason: ReasonUnknownAction}
	}
	if p.IsSuperadmin() {
		return nil
	}
	if r.superadminOnly {
		return &DeniedError{Action: action, Reason: ReasonSuperadminOnly}
	}
	if p.CompanyID == "" || !entity.IsCompanyRole(p.Role) {
		return &DeniedError{Action: action, Reason: ReasonNoCompany}
	}
	if p.IsAdmin() {
		return nil
	}
	if r.adminOnly {
		return &DeniedError{Action: action, Reason: ReasonAdminOnly}
	}
	if r.member {
		return nil
	}
	for _, perm := range r.anyOf {
		if p.Has(perm) {
			return nil
		}
	}
	return &DeniedError{Action: action, Reason: ReasonPermissionRequired, Detail: strings.Join(r.anyOf, " | ")}
}

// ListScope alcance de un listado. Los listados no fallan por falta de privilegio:
// se reducen a lo asignado al principal.
//
//   - Proyectos: admin y manager ven todos los de la empresa; user solo los que
//     contienen una tarea asignada a él.
//   - Tareas: sin "Assign Tasks" solo las asignadas a él.
//   - Recursos: admin ve todos; el resto, con "View Resources" o
//     "Manage Team Resources", los de proyectos con una tarea suya. Sin ninguno
//     de esos permisos se deniega.
//   - Usuarios: quien no es admin solo se ve a sí mismo.
//
// Para el resto de entidades devuelve el alcance del tenant sin reducir.
func ListScope(p Principal, action Action) (Scope, error) {
	if err := Can(p, action); err != nil {
		return Scope{}, err
	}
	base := TenantScope(p)
	if p.IsPrivileged() {
		return base, nil
	}
	switch action {
	case ProjectRead:
		if p.Role == entity.RoleManager {
			return base, nil
		}
		return base.SelfNarrowed(p.UserID), nil
	case TaskRead:
		if p.Has(PermAssignTasks) {
			return base, nil
		}
		return base.SelfNarrowed(p.UserID), nil
	case ResourceRead, UserRead:
		return base.SelfNarrowed(p.UserID), nil
	}
	return base, nil
}
