package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	out := *p
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, sku, price, stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.Name, out.SKU, out.Price, out.Stock, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, sku, price, stock, created_at, updated_at
		 FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Product, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sku, price, stock, created_at, updated_at
		 FROM products ORDER BY name, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, sku = ?, price = ?, stock = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.SKU, p.Price, p.Stock, time.Now().UTC(), p.ID)
	if err != nil {
		return mapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("product %s not found", p.ID)
	}
	return nil
}

// AdjustStock applies delta to the product's stock in a single conditional
// UPDATE, so two concurrent orders can never drive stock negative. A zero
// row count means the product is missing or the stock would go below zero.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock = stock + ?, updated_at = ?
		 WHERE id = ? AND stock + ? >= 0`,
		delta, time.Now().UTC(), id, delta)
	if err != nil {
		return false, mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return mapDBError(err)
}
