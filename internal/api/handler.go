// Package api exposes the HTTP surface: authentication entry points, the
// customer and operator areas, and the opaque external-collaborator proxies.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/internal/session"
)

// Handler carries the wired services for all HTTP endpoints.
type Handler struct {
	auth         *service.AuthService
	orders       *service.OrderService
	tickets      *service.TicketService
	applications *service.ApplicationService
	products     *service.ProductService
	forecast     *service.ForecastService
	audit        domain.AuditRepository
	forwarder    domain.Forwarder // nil when no webhook is configured

	carrier *session.Carrier
	gate    *middleware.Gate
	logger  *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	auth *service.AuthService,
	orders *service.OrderService,
	tickets *service.TicketService,
	applications *service.ApplicationService,
	products *service.ProductService,
	forecast *service.ForecastService,
	audit domain.AuditRepository,
	forwarder domain.Forwarder,
	carrier *session.Carrier,
	gate *middleware.Gate,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:         auth,
		orders:       orders,
		tickets:      tickets,
		applications: applications,
		products:     products,
		forecast:     forecast,
		audit:        audit,
		forwarder:    forwarder,
		carrier:      carrier,
		gate:         gate,
		logger:       logger,
	}
}

// routeBinding pairs a route prefix with its gate requirement. The slice is
// ordered most-specific first and is the single place the protection map is
// declared; Routes below attaches each area's middleware from this table.
type routeBinding struct {
	prefix  string
	binding middleware.Binding
}

// Bindings returns the ordered protection map for the whole surface.
func Bindings() []routeBinding {
	return []routeBinding{
		{"/admin/api", middleware.Binding{Require: domain.KindAdmin, Style: middleware.APIRoute}},
		{"/admin", middleware.Binding{Require: domain.KindAdmin, Style: middleware.PageRoute}},
		{"/api", middleware.Binding{Require: domain.KindCustomer, Style: middleware.APIRoute}},
		{"/account", middleware.Binding{Require: domain.KindCustomer, Style: middleware.PageRoute}},
	}
}

func bindingFor(prefix string) middleware.Binding {
	for _, b := range Bindings() {
		if b.prefix == prefix {
			return b.binding
		}
	}
	// Unlisted prefixes require nothing.
	return middleware.Binding{}
}

// Routes mounts all endpoints on the router. The admin login entry point
// itself requires no session but applies the already-authenticated redirect;
// everything else under /admin is operator-only per the binding table.
func (h *Handler) Routes(r chi.Router) {
	// Public surface.
	r.Get("/healthz", h.Healthz)
	r.Post("/careers/apply", h.SubmitApplication)

	// Login entry points. A valid session of the matching kind skips the
	// form and lands on the authenticated area.
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RedirectIfAuthenticated(domain.KindCustomer))
		r.Get("/login", h.CustomerLoginPage)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RedirectIfAuthenticated(domain.KindAdmin))
		r.Get("/admin/login", h.AdminLoginPage)
	})
	r.Post("/login", h.CustomerLogin)
	r.Post("/admin/login", h.AdminLogin)
	r.Post("/logout", h.Logout)

	// Session introspection never rejects: absent or invalid sessions
	// report a null principal.
	r.Get("/me", h.Me)

	// Customer pages.
	r.Route("/account", func(r chi.Router) {
		r.Use(h.gate.Require(bindingFor("/account")))
		r.Get("/", h.AccountPage)
	})

	// Customer API.
	r.Route("/api", func(r chi.Router) {
		r.Use(h.gate.Require(bindingFor("/api")))

		r.Get("/orders", h.ListOrders)
		r.Post("/orders", h.CreateOrder)
		r.Get("/orders/{id}", h.GetOrder)
		r.Patch("/orders/{id}", h.UpdateOrderStatus)

		r.Get("/tickets", h.ListTickets)
		r.Post("/tickets", h.CreateTicket)
		r.Get("/tickets/{id}", h.GetTicket)
		r.Post("/tickets/{id}/close", h.CloseTicket)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
	})

	// Operator pages.
	r.Group(func(r chi.Router) {
		r.Use(h.gate.Require(bindingFor("/admin")))
		r.Get("/admin", h.AdminPage)
	})

	// Operator API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(h.gate.Require(bindingFor("/admin/api")))

		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
		r.Patch("/orders/{id}", h.UpdateOrderStatus)

		r.Get("/tickets", h.ListTickets)
		r.Get("/tickets/{id}", h.GetTicket)
		r.Post("/tickets/{id}/answer", h.AnswerTicket)
		r.Post("/tickets/{id}/suggest", h.SuggestTicket)
		r.Post("/tickets/{id}/close", h.CloseTicket)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Get("/products/{id}", h.GetProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)

		r.Get("/applications", h.ListApplications)
		r.Post("/applications/{id}/evaluate", h.EvaluateApplication)

		r.Get("/audit", h.ListAudit)

		r.Get("/forecast", h.GetForecast)
		r.Post("/forecast/refresh", h.RefreshForecast)

		r.Post("/automation/forward", h.ForwardAutomation)
	})
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
