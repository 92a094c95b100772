// Package metrics define las métricas Prometheus de la API. Se registran en el
// registry por defecto al importar el paquete; /metrics las expone con promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "proyectos"

// HTTPRequestsTotal peticiones atendidas.
// Labels: method, route (patrón de Fiber, no la URL), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP por método, ruta y código de estado.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration latencia por ruta.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthFailuresTotal fallos de autenticación.
// Label reason: missing_header, missing_token, invalid_token, bad_credentials, inactive_user,
// inactive_company, throttled, bad_permissions (token válido con permisos ilegibles; la petición sigue sin permisos).
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total de fallos de autenticación por motivo.",
	},
	[]string{"reason"},
)

// AuthzDenialsTotal denegaciones de la política de acceso, por código de motivo.
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total de operaciones denegadas por la política de acceso.",
	},
	[]string{"reason"},
)

// SeatLimitRejectionsTotal altas o cambios de rol rechazados por cupo, por rol.
var SeatLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seat_limit_rejections_total",
		Help:      "Total de operaciones rechazadas por cupo del plan agotado.",
	},
	[]string{"role"},
)

// StatusCascadesTotal cambios de estado del admin principal propagados a su empresa.
// Label status: ACTIVE o INACTIVE.
var StatusCascadesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_cascades_total",
		Help:      "Total de cambios de estado en cascada por el admin principal.",
	},
	[]string{"status"},
)

// CascadedUsersTotal usuarios afectados por cascadas de estado.
var CascadedUsersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascaded_users_total",
		Help:      "Total de usuarios cuyo estado cambió por una cascada.",
	},
)
