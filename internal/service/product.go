package service

import (
	"context"

	"backoffice/internal/domain"
)

// ProductService provides inventory management. Products have no ownership
// dimension: listing is open to any authenticated principal, mutation is
// operator-only.
type ProductService struct {
	products domain.ProductRepository
	authz    *AuthorizationService
}

// NewProductService creates a ProductService.
func NewProductService(products domain.ProductRepository, authz *AuthorizationService) *ProductService {
	return &ProductService{products: products, authz: authz}
}

// List returns the product catalogue.
func (s *ProductService) List(ctx context.Context, page domain.PageRequest) ([]domain.Product, int64, error) {
	return s.products.List(ctx, page)
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create adds a product; operator only.
func (s *ProductService) Create(ctx context.Context, pc domain.PrincipalContext, req domain.UpsertProductRequest) (*domain.Product, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "CREATE_PRODUCT"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, &domain.Product{
		Name:  req.Name,
		SKU:   req.SKU,
		Price: req.Price,
		Stock: req.Stock,
	})
}

// Update rewrites a product; operator only.
func (s *ProductService) Update(ctx context.Context, pc domain.PrincipalContext, id string, req domain.UpsertProductRequest) (*domain.Product, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "UPDATE_PRODUCT"); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.SKU = req.SKU
	p.Price = req.Price
	p.Stock = req.Stock
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, id)
}

// Delete removes a product; operator only.
func (s *ProductService) Delete(ctx context.Context, pc domain.PrincipalContext, id string) error {
	if err := s.authz.RequireAdmin(ctx, pc, "DELETE_PRODUCT"); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
