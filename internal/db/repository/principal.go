package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type PrincipalRepo struct {
	db *sql.DB
}

func NewPrincipalRepo(db *sql.DB) *PrincipalRepo {
	return &PrincipalRepo{db: db}
}

func (r *PrincipalRepo) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	out := *p
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	out.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO principals (id, kind, display_name, email, secret_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		out.ID, out.Kind, out.DisplayName, out.Email, out.SecretHash, out.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *PrincipalRepo) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, kind, display_name, email, secret_hash, created_at
		 FROM principals WHERE id = ?`, id))
}

func (r *PrincipalRepo) GetByEmail(ctx context.Context, kind domain.PrincipalKind, email string) (*domain.Principal, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, kind, display_name, email, secret_hash, created_at
		 FROM principals WHERE kind = ? AND email = ?`, kind, email))
}

func (r *PrincipalRepo) List(ctx context.Context, kind domain.PrincipalKind, page domain.PageRequest) ([]domain.Principal, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM principals WHERE kind = ?`, kind).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, display_name, email, secret_hash, created_at
		 FROM principals WHERE kind = ? ORDER BY created_at, id LIMIT ? OFFSET ?`,
		kind, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var principals []domain.Principal
	for rows.Next() {
		var p domain.Principal
		if err := rows.Scan(&p.ID, &p.Kind, &p.DisplayName, &p.Email, &p.SecretHash, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		principals = append(principals, p)
	}
	return principals, total, rows.Err()
}

func (r *PrincipalRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM principals WHERE id = ?`, id)
	return mapDBError(err)
}

func (r *PrincipalRepo) scanOne(row *sql.Row) (*domain.Principal, error) {
	var p domain.Principal
	err := row.Scan(&p.ID, &p.Kind, &p.DisplayName, &p.Email, &p.SecretHash, &p.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &p, nil
}
