package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. El middleware los traduce a 403.
var (
	ErrTokenInvalid = errors.New("jwt: token inválido")
	ErrTokenExpired = errors.New("jwt: token expirado")
)

// Claims incluye los claims estándar JWT más la identidad del principal.
// CompanyID es nil para el superadmin; Permissions se guarda tal cual llegó en el token
// (lista JSON o lista codificada como string) y se decodifica al construir el principal.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string          `json:"id"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	CompanyID   *string         `json:"companyId"`
	Permissions json.RawMessage `json:"permissions,omitempty"`
}

// Company devuelve el companyId o "" si el token no lo trae.
func (c *Claims) Company() string {
	if c.CompanyID == nil {
		return ""
	}
	return *c.CompanyID
}

// Subject datos de identidad a firmar.
type Subject struct {
	UserID      string
	Email       string
	Role        string
	CompanyID   string // "" = sin empresa (superadmin)
	Permissions []string
}

// Generate firma un token HS256 para el sujeto con el ttl indicado. El caller decide el ttl.
func Generate(secret, issuer string, sub Subject, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	perms := sub.Permissions
	if perms == nil {
		perms = []string{}
	}
	rawPerms, err := json.Marshal(perms)
	if err != nil {
		return "", fmt.Errorf("jwt: codificar permisos: %w", err)
	}
	var companyID *string
	if sub.CompanyID != "" {
		id := sub.CompanyID
		companyID = &id
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      sub.UserID,
		Email:       sub.Email,
		Role:        sub.Role,
		CompanyID:   companyID,
		Permissions: rawPerms,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Retorna ErrTokenExpired si exp ya pasó y ErrTokenInvalid para cualquier otro fallo.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
