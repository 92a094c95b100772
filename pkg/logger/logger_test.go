package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var line map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &line))
	return line
}

func TestNew_ProductionEmiteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "proyectos-api", Output: &buf})

	l.Info().Str("project_id", "p1").Msg("hola")
	l.Debug().Msg("no debe salir")

	line := lastLine(t, &buf)
	assert.Equal(t, "hola", line["message"])
	assert.Equal(t, "p1", line["project_id"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "proyectos-api", line["service"])
}

func TestRequest_OmiteCamposVacios(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: "debug", Output: &buf})

	root.Request("req-1", "u1", "").Info().Msg("superadmin")
	line := lastLine(t, &buf)
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "u1", line["user_id"])
	assert.NotContains(t, line, "company_id")

	root.Info().Msg("raíz")
	assert.NotContains(t, lastLine(t, &buf), "request_id", "el sublogger no altera la raíz")
}

func TestForStatus_NivelPorStatus(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})

	for status, want := range map[int]string{200: "info", 404: "warn", 503: "error"} {
		l.ForStatus(status).Msg("http")
		assert.Equal(t, want, lastLine(t, &buf)["level"], status)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("desconocido"))
}
