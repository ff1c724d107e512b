package service

import (
	"context"

	"backoffice/internal/domain"
)

// OrderService provides order operations with ownership scoping applied.
type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	authz    *AuthorizationService
	audit    domain.AuditRepository
}

// NewOrderService creates an OrderService.
func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, authz *AuthorizationService, audit domain.AuditRepository) *OrderService {
	return &OrderService{orders: orders, products: products, authz: authz, audit: audit}
}

// List returns orders visible to the principal. The query always passes
// through the scoper; a customer asking for scope=all still only sees its
// own rows.
func (s *OrderService) List(ctx context.Context, pc domain.PrincipalContext, q domain.ResourceQuery) ([]domain.Order, int64, error) {
	return s.orders.List(ctx, s.authz.Scope(pc, q))
}

// Get fetches an order by id with the ownership re-check applied.
func (s *OrderService) Get(ctx context.Context, pc domain.PrincipalContext, id string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeRead(ctx, pc, o, "order", id); err != nil {
		return nil, err
	}
	return o, nil
}

// Create places an order for the session principal. The owner is always the
// authenticated customer; client-supplied owner fields do not exist.
func (s *OrderService) Create(ctx context.Context, pc domain.PrincipalContext, req domain.CreateOrderRequest) (*domain.Order, error) {
	if pc.Kind != domain.KindCustomer {
		return nil, domain.ErrAccessDenied("only customers can place orders")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// Reserve the stock first with a conditional decrement; the condition
	// makes concurrent orders race on the database row, not on a stale read.
	ok, err := s.products.AdjustStock(ctx, product.ID, -req.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrValidation("insufficient stock for %s", product.Name)
	}

	o, err := s.orders.Create(ctx, &domain.Order{
		OwnerID:   pc.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Total:     product.Price * float64(req.Quantity),
		Status:    domain.OrderPending,
	})
	if err != nil {
		// Release the reservation so a failed insert does not strand stock.
		_, _ = s.products.AdjustStock(ctx, product.ID, req.Quantity)
		return nil, err
	}

	s.logAudit(ctx, pc, "CREATE_ORDER", o.ID)
	return o, nil
}

// UpdateStatus transitions an order. Customers may only cancel their own
// pending orders; the operator may set any valid status on any order.
func (s *OrderService) UpdateStatus(ctx context.Context, pc domain.PrincipalContext, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrValidation("unknown order status %q", status)
	}

	// An absent row surfaces the storage layer's NotFoundError, which carries
	// the same message as an ownership denial from the scoper.
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeMutation(ctx, pc, o, "order", id); err != nil {
		return nil, err
	}

	if !pc.IsAdmin() {
		if status != domain.OrderCancelled {
			return nil, domain.ErrValidation("customers can only cancel orders")
		}
		if o.Status != domain.OrderPending {
			return nil, domain.ErrValidation("only pending orders can be cancelled")
		}
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logAudit(ctx, pc, "UPDATE_ORDER_STATUS", id)
	return s.orders.GetByID(ctx, id)
}

func (s *OrderService) logAudit(ctx context.Context, pc domain.PrincipalContext, action, orderID string) {
	resourceType := "order"
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalID:   pc.ID,
		PrincipalKind: pc.Kind,
		Action:        action,
		ResourceType:  &resourceType,
		ResourceID:    &orderID,
		Status:        domain.AuditAllowed,
	})
}
