package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/internal/domain"
	"github.com/jhoicas/Proyectos-api/internal/domain/entity"
)

func TestScope_OtraEmpresaEsNotFound(t *testing.T) {
	s := TenantScope(principal(entity.RoleAdmin))
	assert.NoError(t, s.Visible(companyA))
	assert.ErrorIs(t, s.Visible(companyB), domain.ErrNotFound)
}

func TestScope_SinEmpresaNoVeNada(t *testing.T) {
	s := Scope{}
	assert.False(t, s.Allows(""))
	assert.False(t, s.Allows(companyA))
}

func TestScope_ForCompanyNoAmpliaAlcance(t *testing.T) {
	admin := TenantScope(principal(entity.RoleAdmin))
	assert.Equal(t, admin, admin.ForCompany(companyB))

	super := TenantScope(principal(entity.RoleSuperadmin)).ForCompany(companyB)
	assert.False(t, super.AllCompanies)
	assert.True(t, super.Allows(companyB))
	assert.False(t, super.Allows(companyA))
}

func TestCheckReference(t *testing.T) {
	assert.NoError(t, CheckReference(companyA, companyA))
	assert.ErrorIs(t, CheckReference(companyA, companyB), domain.ErrCrossTenantReference)
	assert.ErrorIs(t, CheckReference(companyA, ""), domain.ErrCrossTenantReference, "padre inexistente")
	assert.ErrorIs(t, CheckReference("", companyA), domain.ErrCrossTenantReference)
}

func TestWriteCompany(t *testing.T) {
	id, err := WriteCompany(principal(entity.RoleManager), companyB)
	require.NoError(t, err)
	assert.Equal(t, companyA, id, "se ignora la empresa enviada por quien tiene empresa")

	id, err = WriteCompany(principal(entity.RoleSuperadmin), companyB)
	require.NoError(t, err)
	assert.Equal(t, companyB, id)

	_, err = WriteCompany(principal(entity.RoleSuperadmin), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
