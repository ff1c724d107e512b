package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

func (r *TicketRepo) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	out := *t
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.Status == "" {
		out.Status = domain.TicketOpen
	}
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (id, owner_id, subject, body, status, answer, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.OwnerID, out.Subject, out.Body, out.Status, out.Answer, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, subject, body, status, answer, created_at, updated_at
		 FROM tickets WHERE id = ?`, id).
		Scan(&t.ID, &t.OwnerID, &t.Subject, &t.Body, &t.Status, &t.Answer, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &t, nil
}

// List applies exactly the constraints carried by q; visibility decisions
// belong to the scoper.
func (r *TicketRepo) List(ctx context.Context, q domain.ResourceQuery) ([]domain.Ticket, int64, error) {
	where, args := buildOwnableWhere(q)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, subject, body, status, answer, created_at, updated_at
		 FROM tickets`+where+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, q.Page.Limit(), q.Page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Subject, &t.Body, &t.Status, &t.Answer, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	return tickets, total, rows.Err()
}

// Update rewrites the mutable ticket fields. OwnerID is deliberately not in
// the SET list: ownership is immutable after creation.
func (r *TicketRepo) Update(ctx context.Context, t *domain.Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET subject = ?, body = ?, status = ?, answer = ?, updated_at = ?
		 WHERE id = ?`,
		t.Subject, t.Body, t.Status, t.Answer, time.Now().UTC(), t.ID)
	if err != nil {
		return mapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("ticket %s not found", t.ID)
	}
	return nil
}
