package service

import (
	"context"
	"fmt"

	"backoffice/internal/domain"
)

// ForecastService generates and serves the AI sales-forecast narrative.
type ForecastService struct {
	forecasts domain.ForecastRepository
	orders    domain.OrderRepository
	authz     *AuthorizationService
	evaluator domain.Evaluator // nil when AI is not configured
}

// NewForecastService creates a ForecastService. evaluator may be nil.
func NewForecastService(forecasts domain.ForecastRepository, orders domain.OrderRepository, authz *AuthorizationService, evaluator domain.Evaluator) *ForecastService {
	return &ForecastService{forecasts: forecasts, orders: orders, authz: authz, evaluator: evaluator}
}

// Latest returns the most recent forecast narrative; operator only.
func (s *ForecastService) Latest(ctx context.Context, pc domain.PrincipalContext) (*domain.Forecast, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "READ_FORECAST"); err != nil {
		return nil, err
	}
	return s.forecasts.Latest(ctx)
}

// Refresh summarises recent orders into a prompt and stores the generated
// narrative. Called by the nightly job and by the admin refresh endpoint.
// Refresh runs with full visibility: it is an internal task, not a request
// on behalf of a customer.
func (s *ForecastService) Refresh(ctx context.Context) (*domain.Forecast, error) {
	if s.evaluator == nil {
		return nil, domain.ErrValidation("AI forecasting is not configured")
	}

	recent, total, err := s.orders.List(ctx, domain.ResourceQuery{
		Page: domain.PageRequest{PageSize: domain.MaxPageSize},
	})
	if err != nil {
		return nil, err
	}

	var revenue float64
	byStatus := map[string]int{}
	for _, o := range recent {
		revenue += o.Total
		byStatus[o.Status]++
	}

	prompt := fmt.Sprintf(
		"Write a short sales-forecast narrative for a small business. "+
			"Recent data: %d orders total, %.2f revenue in the latest %d, "+
			"status counts: %d pending, %d paid, %d shipped, %d cancelled.",
		total, revenue, len(recent),
		byStatus[domain.OrderPending], byStatus[domain.OrderPaid],
		byStatus[domain.OrderShipped], byStatus[domain.OrderCancelled])

	narrative, err := s.evaluator.Evaluate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	f := &domain.Forecast{Narrative: narrative}
	if err := s.forecasts.Insert(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
