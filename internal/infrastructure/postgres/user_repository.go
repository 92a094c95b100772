package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, company_id, name, email, password_hash, role, status, permissions, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		companyID *string
		perms     []byte
	)
	err := row.Scan(&u.ID, &companyID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&perms, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if companyID != nil {
		u.CompanyID = *companyID
	}
	// Filas antiguas guardan la lista como string JSON; DecodePermissions acepta ambas formas.
	list, _ := access.DecodePermissions(perms)
	u.Permissions = list
	return &u, nil
}

func encodePermissions(perms []string) ([]byte, error) {
	if perms == nil {
		perms = []string{}
	}
	return json.Marshal(perms)
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	perms, err := encodePermissions(u.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		u.ID, nilIfEmpty(u.CompanyID), u.Name, u.Email, u.PasswordHash, u.Role, u.Status,
		perms, u.LastLogin, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID dentro del alcance.
func (r *UserRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.User, error) {
	var w where
	w.add("id = ?", id)
	w.tenant(scope, "company_id")
	if scope.IsNarrowed() {
		w.add("id = ?", scope.AssigneeID)
	}
	return r.get(ctx, `SELECT `+userColumns+` FROM users`+w.String(), w.args...)
}

// GetByEmail obtiene un usuario por email (cualquier empresa).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) get(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza los datos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	perms, err := encodePermissions(u.Permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, status = $6, permissions = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Status, perms, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de un usuario de la empresa.
func (r *UserRepo) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET status = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, status)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusExceptUser aplica el estado al resto de usuarios de la empresa.
func (r *UserRepo) UpdateStatusExceptUser(ctx context.Context, companyID, exceptID, status string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET status = $3, updated_at = now() WHERE company_id = $1 AND id <> $2`,
		companyID, exceptID, status)
	if err != nil {
		return 0, fmt.Errorf("cascade user status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateLastLogin registra el último login.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CountByRole cuenta los usuarios de un rol en la empresa.
func (r *UserRepo) CountByRole(ctx context.Context, companyID, role string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE company_id = $1 AND role = $2`, companyID, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// List lista usuarios del alcance ordenados por nombre.
func (r *UserRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.User, error) {
	var w where
	w.tenant(scope, "company_id")
	if scope.IsNarrowed() {
		w.add("id = ?", scope.AssigneeID)
	}
	query := `SELECT ` + userColumns + ` FROM users` + w.String() +
		` ORDER BY name LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// BelongsTo informa si el usuario es de la empresa.
func (r *UserRepo) BelongsTo(ctx context.Context, companyID, id string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND company_id = $2)`, id, companyID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("user belongs to company: %w", err)
	}
	return ok, nil
}

// Delete elimina un usuario de la empresa.
func (r *UserRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
