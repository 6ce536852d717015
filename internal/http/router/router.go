// Package router arma el árbol de rutas de la API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/http/handlers"
	mw "github.com/dropDatabas3/acmedash/internal/http/middlewares"
	"github.com/dropDatabas3/acmedash/internal/session"
)

// Deps contiene las dependencias para construir el router.
type Deps struct {
	Handlers *handlers.Handlers
	Resolver *authz.Resolver
	Sessions session.Source
}

// New construye el router completo.
//
// Política de acceso:
//   - Lecturas (dashboard, listados, GET por id): abiertas; anónimo = viewer.
//   - Crear y modificar invoices/customers: editor o superior.
//   - Borrar: solo admin.
//   - /v1/me: requiere sesión (401 sin ella).
//
// El único fallo de autorización observable es 403.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares globales, del más externo al más interno.
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithMetrics())
	r.Use(mw.WithSession(d.Sessions))

	r.Get("/healthz", d.Handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", d.Handlers.DashboardSummary)

		r.With(mw.RequireSession()).Get("/me", d.Handlers.Me)

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", d.Handlers.ListInvoices)
			r.Get("/{id}", d.Handlers.GetInvoice)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(d.Resolver, authz.RoleEditor))
				r.Post("/", d.Handlers.CreateInvoice)
				r.Put("/{id}", d.Handlers.UpdateInvoice)
				r.Post("/{id}/remind", d.Handlers.RemindInvoice)
			})

			r.With(mw.RequireRole(d.Resolver, authz.RoleAdmin)).
				Delete("/{id}", d.Handlers.DeleteInvoice)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", d.Handlers.ListCustomers)
			r.Get("/{id}", d.Handlers.GetCustomer)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(d.Resolver, authz.RoleEditor))
				r.Post("/", d.Handlers.CreateCustomer)
				r.Put("/{id}", d.Handlers.UpdateCustomer)
			})

			r.With(mw.RequireRole(d.Resolver, authz.RoleAdmin)).
				Delete("/{id}", d.Handlers.DeleteCustomer)
		})
	})

	return r
}
