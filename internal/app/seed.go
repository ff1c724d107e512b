package app

import (
	"context"
	"fmt"
	"log/slog"

	"backoffice/internal/domain"
	"backoffice/internal/service"
)

// SeedDemoData populates an empty store with an operator, two customers,
// a small product catalog, and a few orders. Idempotent — skips when any
// principal already exists.
func SeedDemoData(ctx context.Context, principals domain.PrincipalRepository, products domain.ProductRepository, orders domain.OrderRepository, logger *slog.Logger) error {
	existing, _, err := principals.List(ctx, domain.KindAdmin, domain.PageRequest{PageSize: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	hash := func(plain string) string {
		h, hashErr := service.HashSecret(plain)
		if hashErr != nil {
			panic(hashErr) // bcrypt only fails on invalid cost
		}
		return h
	}

	admin, err := principals.Create(ctx, &domain.Principal{
		Kind:        domain.KindAdmin,
		DisplayName: "Demo Operator",
		Email:       "admin@example.com",
		SecretHash:  hash("admin-demo-pass"),
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	alice, err := principals.Create(ctx, &domain.Principal{
		Kind:        domain.KindCustomer,
		DisplayName: "Alice Demo",
		Email:       "alice@example.com",
		SecretHash:  hash("alice-demo-pass"),
	})
	if err != nil {
		return fmt.Errorf("create customer alice: %w", err)
	}
	bob, err := principals.Create(ctx, &domain.Principal{
		Kind:        domain.KindCustomer,
		DisplayName: "Bob Demo",
		Email:       "bob@example.com",
		SecretHash:  hash("bob-demo-pass"),
	})
	if err != nil {
		return fmt.Errorf("create customer bob: %w", err)
	}

	widget, err := products.Create(ctx, &domain.Product{
		Name: "Widget", SKU: "WID-001", Price: 19.90, Stock: 500,
	})
	if err != nil {
		return fmt.Errorf("create product widget: %w", err)
	}
	gadget, err := products.Create(ctx, &domain.Product{
		Name: "Gadget", SKU: "GAD-001", Price: 49.00, Stock: 120,
	})
	if err != nil {
		return fmt.Errorf("create product gadget: %w", err)
	}

	demoOrders := []domain.Order{
		{OwnerID: alice.ID, ProductID: widget.ID, Quantity: 2, Total: 2 * widget.Price, Status: domain.OrderPaid},
		{OwnerID: alice.ID, ProductID: gadget.ID, Quantity: 1, Total: gadget.Price, Status: domain.OrderPending},
		{OwnerID: bob.ID, ProductID: widget.ID, Quantity: 5, Total: 5 * widget.Price, Status: domain.OrderShipped},
	}
	for i := range demoOrders {
		if _, err := orders.Create(ctx, &demoOrders[i]); err != nil {
			return fmt.Errorf("create demo order: %w", err)
		}
	}

	logger.Info("seeded demo data",
		"admin", admin.Email,
		"customers", 2,
		"products", 2,
		"orders", len(demoOrders),
	)
	return nil
}
