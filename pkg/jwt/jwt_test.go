package jwt_test

import (
	"encoding/json"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Proyectos-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "proyectos-api-test"
)

func testSubject() pkgjwt.Subject {
	return pkgjwt.Subject{
		UserID:      "00000000-0000-0000-0000-000000000001",
		Email:       "ana@acme.test",
		Role:        "manager",
		CompanyID:   "00000000-0000-0000-0000-000000000002",
		Permissions: []string{"Create Projects", "Assign Tasks"},
	}
}

func TestJWT_GenerateAndParse_RoundTrip(t *testing.T) {
	sub := testSubject()
	tok, err := pkgjwt.Generate(testSecret, testIssuer, sub, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, sub.UserID, claims.UserID)
	assert.Equal(t, sub.Email, claims.Email)
	assert.Equal(t, sub.Role, claims.Role)
	assert.Equal(t, sub.CompanyID, claims.Company())

	var perms []string
	require.NoError(t, json.Unmarshal(claims.Permissions, &perms))
	assert.Equal(t, sub.Permissions, perms, "el orden de los permisos se conserva")

	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestJWT_SuperadminSinCompany(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, pkgjwt.Subject{UserID: "root", Role: "superadmin"}, time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Nil(t, claims.CompanyID)
	assert.Equal(t, "", claims.Company())
	assert.JSONEq(t, `[]`, string(claims.Permissions))
}

func TestJWT_TokenExpirado_RetornaErrTokenExpired(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, testSubject(), -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

func TestJWT_SecretIncorrecto_RetornaErrTokenInvalid(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, testSubject(), time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
	assert.NotErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

func TestJWT_Malformado_RetornaErrTokenInvalid(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestJWT_AlgoritmoNone_Rechazado(t *testing.T) {
	claims := gojwt.MapClaims{"id": "x", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIssuer, testSubject(), time.Hour)
	assert.Error(t, err)
}
