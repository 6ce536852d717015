// Package metrics define los contadores Prometheus de la API.
// Vive en un paquete propio para evitar ciclos entre middlewares y handlers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests cuenta requests por método, ruta y status.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests HTTP atendidos",
	}, []string{"method", "route", "status"})

	// HTTPDuration mide la latencia por ruta en milisegundos.
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Latencia de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "route"})

	// AuthzDecisions cuenta los resultados del chequeo de rol.
	// outcome: granted | denied | error.
	AuthzDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authz_decisions_total",
		Help: "Decisiones de autorización por rol requerido y resultado",
	}, []string{"required", "outcome"})
)

// Register registra las métricas en el registry dado (o el default si es nil).
// Tolera doble registro para no romper tests que levantan varios routers.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{HTTPRequests, HTTPDuration, AuthzDecisions} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
