package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/usecase"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Proyectos-api/internal/interfaces/http"
	"github.com/jhoicas/Proyectos-api/pkg/logger"
)

const (
	rootEmail    = "root@proyectos.test"
	rootPassword = "rootpass"
)

func init() {
	usecase.PasswordCost = bcrypt.MinCost
}

type testServer struct {
	app       *fiber.App
	rootToken string
}

// newTestServer API completa sobre el store en memoria, con el superadmin sembrado.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, auth.JWTConfig{
		Secret: testJWTSecret,
		TTL:    time.Hour,
		Issuer: testIssuer,
	}, nil)
	_, err := authUC.EnsureSuperadmin(context.Background(), rootEmail, rootPassword, "Root")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(repos, store),
		UserUC:      usecase.NewUserUseCase(repos, store),
		ProjectUC:   usecase.NewProjectUseCase(repos, store),
		TaskUC:      usecase.NewTaskUseCase(repos),
		ResourceUC:  usecase.NewResourceUseCase(repos),
		RiskUC:      usecase.NewRiskUseCase(repos, store),
		BudgetUC:    usecase.NewBudgetUseCase(repos, store),
		ActivityUC:  usecase.NewActivityUseCase(repos.Activity),
		DashboardUC: usecase.NewDashboardUseCase(repos.Dashboard),
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
		ServiceName: "proyectos-api",
	})

	s := &testServer{app: app}
	s.rootToken = s.login(t, rootEmail, rootPassword)
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

// createCompany crea una empresa con su admin y devuelve la respuesta y el token del admin.
func (s *testServer) createCompany(t *testing.T, name, adminEmail string) (dto.CreateCompanyResponse, string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/companies", s.rootToken, map[string]any{
		"companyName":   name,
		"adminName":     name + " Admin",
		"adminEmail":    adminEmail,
		"adminPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.CreateCompanyResponse](t, resp)
	return out, s.login(t, adminEmail, "secret1")
}

func (s *testServer) createProject(t *testing.T, token, name string) dto.ProjectResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/projects", token, map[string]any{
		"name":      name,
		"startDate": "2026-01-01T00:00:00Z",
		"endDate":   "2026-06-30T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProjectResponse](t, resp)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLogin_RutaCompatibleYSinPassword(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/auth/login", "/api/user/login"} {
		resp := s.do(t, http.MethodPost, path, "", dto.LoginRequest{Email: rootEmail, Password: rootPassword})
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"token"`)
		assert.NotContains(t, string(raw), "password")
	}
}

func TestLogin_Errores(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: rootEmail, Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decode[dto.ErrorResponse](t, resp).Error)

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Contains(t, body.Details, "email")
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	company, adminToken := s.createCompany(t, "Acme", "ana@acme.test")

	resp := s.do(t, http.MethodGet, "/api/auth/me", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.MeResponse](t, resp)
	assert.Equal(t, entity.RoleAdmin, me.Role)
	require.NotNil(t, me.CompanyID)
	assert.Equal(t, company.Company.ID, *me.CompanyID)

	resp = s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCompanies_SoloSuperadmin(t *testing.T) {
	s := newTestServer(t)
	company, adminToken := s.createCompany(t, "Acme", "ana@acme.test")

	resp := s.do(t, http.MethodGet, "/api/companies", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "SUPERADMIN_ONLY", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodGet, "/api/companies?all=true", s.rootToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.CompanyListResponse](t, resp).Items, 1)

	resp = s.do(t, http.MethodGet, "/api/companies/plan/"+company.Company.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decode[dto.CompanyPlanResponse](t, resp)
	assert.Equal(t, entity.PlanBasic, plan.Plan)
	assert.Equal(t, 2, plan.Admins.Limit)
	assert.Equal(t, 1, plan.Admins.Used)
}

func TestCompanies_PlanInvalido_400(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/companies", s.rootToken, map[string]any{
		"companyName":   "Acme",
		"plan":          "GOLD",
		"adminName":     "Ana",
		"adminEmail":    "ana@acme.test",
		"adminPassword": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_LimiteDeCupos(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.createCompany(t, "Acme", "ana@acme.test")

	newAdmin := func(email string) *http.Response {
		return s.do(t, http.MethodPost, "/api/users", adminToken, map[string]any{
			"name": "Otro", "email": email, "password": "secret1", "role": "admin",
		})
	}
	assert.Equal(t, http.StatusCreated, newAdmin("b@acme.test").StatusCode)

	resp := newAdmin("c@acme.test")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "SEAT_LIMIT_EXCEEDED", body.Code)
	assert.Contains(t, body.Error, "2")

	resp = newAdmin("b@acme.test")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "el cupo se revisa antes que el email")
}

func TestUsers_EmailDuplicado_409(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.createCompany(t, "Acme", "ana@acme.test")

	resp := s.do(t, http.MethodPost, "/api/users", adminToken, map[string]any{
		"name": "Otra", "email": "ana@acme.test", "password": "secret1", "role": "user",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestToggle_AdminPrincipalEnCascada(t *testing.T) {
	s := newTestServer(t)
	company, adminToken := s.createCompany(t, "Acme", "ana@acme.test")
	resp := s.do(t, http.MethodPost, "/api/users", adminToken, map[string]any{
		"name": "Beto", "email": "beto@acme.test", "password": "secret1", "role": "user",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	path := "/api/companies/" + company.Company.ID + "/user/" + company.Admin.ID
	resp = s.do(t, http.MethodPut, path, s.rootToken, dto.ToggleUserStatusRequest{Status: entity.UserStatusInactive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ToggleUserStatusResponse](t, resp)
	assert.True(t, out.Cascaded)
	assert.Equal(t, int64(1), out.AffectedUsers)

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "beto@acme.test", Password: "secret1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "User account is inactive", decode[dto.ErrorResponse](t, resp).Error)

	resp = s.do(t, http.MethodPut, path, s.rootToken, dto.ToggleUserStatusRequest{Status: entity.UserStatusActive})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s.login(t, "beto@acme.test", "secret1")

	resp = s.do(t, http.MethodPut, path, s.rootToken, map[string]any{"status": "PAUSED"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjects_PermisosYAislamiento(t *testing.T) {
	s := newTestServer(t)
	_, acmeToken := s.createCompany(t, "Acme", "ana@acme.test")
	_, globexToken := s.createCompany(t, "Globex", "gus@globex.test")

	resp := s.do(t, http.MethodPost, "/api/users", acmeToken, map[string]any{
		"name": "Beto", "email": "beto@acme.test", "password": "secret1", "role": "user",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userToken := s.login(t, "beto@acme.test", "secret1")

	resp = s.do(t, http.MethodPost, "/api/projects", userToken, map[string]any{
		"name": "p", "startDate": "2026-01-01T00:00:00Z", "endDate": "2026-02-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "PERMISSION_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)

	foreign := s.createProject(t, globexToken, "globex")
	resp = s.do(t, http.MethodGet, "/api/projects/"+foreign.ID, acmeToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	missing := s.do(t, http.MethodGet, "/api/projects/no-existe", acmeToken, nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, decode[dto.ErrorResponse](t, missing), decode[dto.ErrorResponse](t, resp),
		"otra empresa e inexistente responden igual")
}

func TestTasks_ProyectoDeOtraEmpresa_400(t *testing.T) {
	s := newTestServer(t)
	_, acmeToken := s.createCompany(t, "Acme", "ana@acme.test")
	_, globexToken := s.createCompany(t, "Globex", "gus@globex.test")
	foreign := s.createProject(t, globexToken, "globex")

	resp := s.do(t, http.MethodPost, "/api/tasks", acmeToken, map[string]any{
		"projectId": foreign.ID,
		"title":     "t",
		"startDate": "2026-01-01T00:00:00Z",
		"endDate":   "2026-01-05T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CROSS_TENANT_REFERENCE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProjects_BorrarConTareas_400(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createCompany(t, "Acme", "ana@acme.test")
	pr := s.createProject(t, token, "acme")
	resp := s.do(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"projectId": pr.ID,
		"title":     "t",
		"startDate": "2026-01-01T00:00:00Z",
		"endDate":   "2026-01-05T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/api/projects/"+pr.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, usecase.ErrProjectHasTasks, decode[dto.ErrorResponse](t, resp).Error)

	resp = s.do(t, http.MethodGet, "/api/projects/"+pr.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRisks_BitacoraPorEntidad(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createCompany(t, "Acme", "ana@acme.test")
	pr := s.createProject(t, token, "acme")

	resp := s.do(t, http.MethodPost, "/api/risks", token, map[string]any{
		"projectId": pr.ID, "description": "proveedor", "severityLevel": "HIGH",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	risk := decode[entity.Risk](t, resp)

	resp = s.do(t, http.MethodDelete, "/api/risks/"+risk.ID, token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/activity/"+entity.EntityRisk+"/"+risk.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decode[dto.ActivityLogListResponse](t, resp)
	require.Len(t, logs.Items, 2)
	assert.Equal(t, usecase.ActionRiskDeleted, logs.Items[0].Action)
}

func TestDashboard_ProjectStatus(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createCompany(t, "Acme", "ana@acme.test")
	s.createProject(t, token, "acme")

	resp := s.do(t, http.MethodGet, "/api/dashboard/project-status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	counts := decode[[]dto.StatusCount](t, resp)
	require.Len(t, counts, 4)
	assert.Equal(t, dto.StatusCount{Name: "Planned", Value: 1}, counts[0])
}

func TestHealthYMetrics(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "proyectos_http_requests_total")
}

func TestRutaInexistente_404(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/nada", s.rootToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestFechasSoloDia_Aceptadas(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createCompany(t, "Acme", "ana@acme.test")
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	resp := s.do(t, http.MethodPost, "/api/projects", token, map[string]any{
		"name": "acme", "startDate": "2024-01-01", "endDate": "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	pr := decode[dto.ProjectResponse](t, resp)
	assert.True(t, jan1.Equal(pr.StartDate), pr.StartDate)

	resp = s.do(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"projectId": pr.ID, "title": "t", "startDate": "2024-01-01", "endDate": "2024-01-05",
		"completionDate": "2024-01-04",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[dto.TaskResponse](t, resp)
	assert.True(t, jan1.Equal(task.StartDate), task.StartDate)
	require.NotNil(t, task.CompletionDate)

	resp = s.do(t, http.MethodPost, "/api/resources", token, map[string]any{
		"projectId": pr.ID, "resourceType": "Developer",
		"allocationStart": "2024-01-01", "allocationEnd": "2024-03-01T12:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res := decode[dto.ResourceResponse](t, resp)
	assert.True(t, jan1.Equal(res.AllocationStart), res.AllocationStart)

	resp = s.do(t, http.MethodPut, "/api/projects/"+pr.ID, token, map[string]any{"endDate": "2024-03-15"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Equal(decode[dto.ProjectResponse](t, resp).EndDate))

	resp = s.do(t, http.MethodPost, "/api/projects", token, map[string]any{
		"name": "acme", "startDate": "01/02/2024", "endDate": "2024-02-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIdsMalformados(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createCompany(t, "Acme", "ana@acme.test")
	pr := s.createProject(t, token, "acme")

	missing := s.do(t, http.MethodGet, "/api/projects/00000000-0000-0000-0000-00000000dead", token, nil)
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
	want := decode[dto.ErrorResponse](t, missing)
	for _, path := range []string{"/api/projects/abc", "/api/tasks/1", "/api/risks/x", "/api/companies/plan/nope"} {
		resp := s.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, want, decode[dto.ErrorResponse](t, resp), path)
	}

	resp := s.do(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"projectId": "x", "title": "t", "startDate": "2024-01-01", "endDate": "2024-01-05",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Contains(t, body.Details, "projectId")

	resp = s.do(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"projectId": pr.ID, "title": "t", "assignedTo": "nadie", "startDate": "2024-01-01", "endDate": "2024-01-05",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for _, path := range []string{"/api/activity?entityId=5", "/api/tasks?projectId=x", "/api/users?companyId=acme"} {
		resp = s.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, "VALIDATION_ERROR", decode[dto.ErrorResponse](t, resp).Code, path)
	}
}

// Los labels de las métricas sobreviven a la reutilización de buffers entre peticiones.
func TestMetrics_TraficoMixto(t *testing.T) {
	s := newTestServer(t)
	s.createCompany(t, "Acme", "ana@acme.test")
	s.createCompany(t, "Globex", "gus@globex.test")
	for i := 0; i < 3; i++ {
		s.do(t, http.MethodGet, "/api/companies", s.rootToken, nil)
		s.do(t, http.MethodGet, "/health", "", nil)
	}

	resp := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `method="POST",route="/api/companies/",status="201"`)
	assert.Contains(t, string(raw), `method="GET",route="/api/companies/",status="200"`)
	assert.NotContains(t, string(raw), `method="GETT"`)
}
