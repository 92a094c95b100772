package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/domain/access"
	"github.com/jhoicas/Proyectos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Proyectos-api/pkg/jwt"
)

// LocalPrincipal key de c.Locals donde queda el access.Principal de la petición.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token y carga el principal en c.Locals.
// Sin header o sin token responde 401; un token que no verifica responde 403.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header missing", Code: "MISSING_HEADER"})
		}
		tokenString := bearerToken(authHeader)
		if tokenString == "" {
			metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Token missing", Code: "MISSING_TOKEN"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			code := "INVALID_TOKEN"
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Invalid or expired token", Code: code})
		}
		p, outcome := principalFromClaims(claims)
		if outcome == access.PermissionsRejected {
			// Token válido con permisos ilegibles: se atiende sin permisos.
			metrics.AuthFailuresTotal.WithLabelValues("bad_permissions").Inc()
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// bearerToken devuelve el segundo segmento del header separado por espacios, sin mirar
// el esquema: "Basic abc" llega a verificación y falla con 403. "" si no hay segmento.
func bearerToken(header string) string {
	parts := strings.Split(strings.TrimSpace(header), " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// principalFromClaims decodifica los permisos una sola vez; con PermissionsRejected
// el principal queda sin permisos.
func principalFromClaims(claims *jwt.Claims) (access.Principal, access.PermissionsDecode) {
	perms, outcome := access.DecodePermissions(claims.Permissions)
	return access.Principal{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Role:        claims.Role,
		CompanyID:   claims.Company(),
		Permissions: perms,
	}, outcome
}

// GetPrincipal devuelve el principal de la petición (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) (access.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(access.Principal)
	return p, ok
}

// GetUserID devuelve el UserID del principal o "".
func GetUserID(c *fiber.Ctx) string {
	p, _ := GetPrincipal(c)
	return p.UserID
}

// GetCompanyID devuelve el CompanyID del principal o "" (superadmin o sin auth).
func GetCompanyID(c *fiber.Ctx) string {
	p, _ := GetPrincipal(c)
	return p.CompanyID
}

// principal obtiene el principal o falla con 401 si la ruta no pasó por AuthMiddleware.
func principal(c *fiber.Ctx) (access.Principal, error) {
	p, ok := GetPrincipal(c)
	if !ok {
		return access.Principal{}, errUnauthenticated
	}
	return p, nil
}
