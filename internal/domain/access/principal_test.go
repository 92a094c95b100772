package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePermissions(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    Permissions
		outcome PermissionsDecode
	}{
		{"lista", `["Create Projects","Assign Tasks"]`, Permissions{"Create Projects", "Assign Tasks"}, PermissionsDecoded},
		{"lista codificada en string", `"[\"Edit Budgets\"]"`, Permissions{"Edit Budgets"}, PermissionsDecoded},
		{"vacío", ``, Permissions{}, PermissionsDecoded},
		{"null", `null`, Permissions{}, PermissionsDecoded},
		{"string vacío", `""`, Permissions{}, PermissionsDecoded},
		{"se descartan vacíos", `["", "View Resources"]`, Permissions{"View Resources"}, PermissionsDecoded},
		{"objeto", `{"Create Projects":true}`, Permissions{}, PermissionsRejected},
		{"string ilegible", `"Create Projects"`, Permissions{}, PermissionsRejected},
		{"basura", `[1,2`, Permissions{}, PermissionsRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, outcome := DecodePermissions([]byte(tc.raw))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.outcome, outcome)
		})
	}
}

func TestPrincipal_Has(t *testing.T) {
	p := Principal{Permissions: Permissions{"Assign Tasks"}}
	assert.True(t, p.Has("Assign Tasks"))
	assert.False(t, p.Has("assign tasks"))
}
