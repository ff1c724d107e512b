package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	out := *o
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.Status == "" {
		out.Status = domain.OrderPending
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, owner_id, product_id, quantity, total, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.OwnerID, out.ProductID, out.Quantity, out.Total, out.Status, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, product_id, quantity, total, status, created_at, updated_at
		 FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.OwnerID, &o.ProductID, &o.Quantity, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &o, nil
}

// List applies exactly the constraints carried by q. The owner constraint is
// the scoper's output; this layer never decides visibility on its own.
func (r *OrderRepo) List(ctx context.Context, q domain.ResourceQuery) ([]domain.Order, int64, error) {
	where, args := buildOwnableWhere(q)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, product_id, quantity, total, status, created_at, updated_at
		 FROM orders`+where+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, q.Page.Limit(), q.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.ProductID, &o.Quantity, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return mapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("order %s not found", id)
	}
	return nil
}

// buildOwnableWhere renders the WHERE clause shared by the ownable-resource
// tables (orders, tickets) from a scoped query.
func buildOwnableWhere(q domain.ResourceQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q.OwnerID != nil {
		clauses = append(clauses, "owner_id = ?")
		args = append(args, *q.OwnerID)
	}
	if q.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, q.Status)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}
