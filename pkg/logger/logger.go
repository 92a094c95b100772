// Package logger registro estructurado de la API sobre zerolog.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string    // development: consola legible; cualquier otro: JSON
	Level   string    // nombre de nivel de zerolog; "warning" también vale
	Service string    // campo "service" en cada línea, si no es vacío
	Output  io.Writer // os.Stdout si es nil
}

// Logger logger de la aplicación. Se inyecta en main y en el router.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger raíz y lo instala también como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop descarta todo.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// ParseLevel sin distinguir mayúsculas. Vacío o desconocido es info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Request sublogger con la correlación de una petición. Los campos vacíos se omiten
// (rutas públicas o superadmin sin empresa).
func (l *Logger) Request(requestID, userID, companyID string) *Logger {
	ctx := l.zl.With()
	for _, f := range [...]struct{ key, val string }{
		{"request_id", requestID},
		{"user_id", userID},
		{"company_id", companyID},
	} {
		if f.val != "" {
			ctx = ctx.Str(f.key, f.val)
		}
	}
	return &Logger{zl: ctx.Logger()}
}

// ForStatus evento con el nivel que corresponde a un status HTTP: error para 5xx,
// warn para 4xx, info para el resto.
func (l *Logger) ForStatus(status int) *zerolog.Event {
	switch {
	case status >= 500:
		return l.zl.Error()
	case status >= 400:
		return l.zl.Warn()
	default:
		return l.zl.Info()
	}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
