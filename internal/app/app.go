// Package app provides application-level wiring and dependency injection
// for the back-office server.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"backoffice/internal/ai"
	"backoffice/internal/config"
	"backoffice/internal/db/repository"
	"backoffice/internal/domain"
	"backoffice/internal/jobs"
	"backoffice/internal/middleware"
	"backoffice/internal/service"
	"backoffice/internal/session"
	"backoffice/internal/webhook"
)

// Deps holds the external dependencies that main() must provide: database
// handles, config, and the logger.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// Services groups all service pointers that the API handler needs.
type Services struct {
	Auth         *service.AuthService
	Authz        *service.AuthorizationService
	Orders       *service.OrderService
	Tickets      *service.TicketService
	Applications *service.ApplicationService
	Products     *service.ProductService
	Forecast     *service.ForecastService
}

// App holds the fully-wired application.
type App struct {
	Services  Services
	Audit     domain.AuditRepository
	Forwarder domain.Forwarder // nil when no webhook is configured
	Carrier   *session.Carrier
	Gate      *middleware.Gate
	Jobs      *jobs.Scheduler
}

// New wires repositories, services, session machinery, and background jobs
// from the provided deps. It also seeds demo data on an empty store.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	// Repositories. Mutating repos ride the single-writer pool. The audit
	// trail gets a second handle on the read pool for the operator listing,
	// which can page through large histories without blocking writers.
	principalRepo := repository.NewPrincipalRepo(deps.WriteDB)
	orderRepo := repository.NewOrderRepo(deps.WriteDB)
	ticketRepo := repository.NewTicketRepo(deps.WriteDB)
	applicationRepo := repository.NewApplicationRepo(deps.WriteDB)
	productRepo := repository.NewProductRepo(deps.WriteDB)
	forecastRepo := repository.NewForecastRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)
	auditReadRepo := repository.NewAuditRepo(deps.ReadDB)

	// Session machinery.
	codec, err := session.NewCodec(cfg.Session.Secret, cfg.Session.AdminTTL, cfg.Session.CustomerTTL)
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}
	carrier := session.NewCarrier(cfg.SecureCookies())
	gate := middleware.NewGate(codec, carrier, middleware.DefaultGateConfig(), deps.Logger.With("component", "gate"))

	// External collaborators. Both are optional; nil disables the feature.
	var evaluator domain.Evaluator
	if cfg.AI.Enabled() {
		evaluator = ai.NewClient(cfg.AI.Endpoint, cfg.AI.APIKey, cfg.AI.Model)
	}
	var forwarder domain.Forwarder
	if cfg.WebhookURL != "" {
		forwarder = webhook.NewForwarder(cfg.WebhookURL)
	}

	// Services.
	authzSvc := service.NewAuthorizationService(auditRepo)
	authSvc := service.NewAuthService(principalRepo, auditRepo, codec)
	orderSvc := service.NewOrderService(orderRepo, productRepo, authzSvc, auditRepo)
	ticketSvc := service.NewTicketService(ticketRepo, authzSvc, auditRepo, evaluator)
	applicationSvc := service.NewApplicationService(applicationRepo, authzSvc, evaluator)
	productSvc := service.NewProductService(productRepo, authzSvc)

	forecastSvc := service.NewForecastService(forecastRepo, orderRepo, authzSvc, evaluator)

	// Background jobs. The forecast job is only registered when AI is
	// configured; retention pruning always runs.
	var jobForecast *service.ForecastService
	if cfg.AI.Enabled() {
		jobForecast = forecastSvc
	}
	scheduler := jobs.NewScheduler(jobForecast, auditRepo, cfg.AuditRetentionDays, deps.Logger.With("component", "jobs"))

	if !cfg.IsProduction() {
		if err := SeedDemoData(ctx, principalRepo, productRepo, orderRepo, deps.Logger); err != nil {
			deps.Logger.Warn("seed demo data failed", "error", err)
		}
	}

	return &App{
		Services: Services{
			Auth:         authSvc,
			Authz:        authzSvc,
			Orders:       orderSvc,
			Tickets:      ticketSvc,
			Applications: applicationSvc,
			Products:     productSvc,
			Forecast:     forecastSvc,
		},
		Audit:     auditReadRepo,
		Forwarder: forwarder,
		Carrier:   carrier,
		Gate:      gate,
		Jobs:      scheduler,
	}, nil
}
