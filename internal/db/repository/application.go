package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	out := *a
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	out.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, candidate_name, email, resume, score, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.CandidateName, out.Email, out.Resume, out.Score, out.Summary, out.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &out, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.QueryRowContext(ctx,
		`SELECT id, candidate_name, email, resume, score, summary, created_at
		 FROM applications WHERE id = ?`, id).
		Scan(&a.ID, &a.CandidateName, &a.Email, &a.Resume, &a.Score, &a.Summary, &a.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &a, nil
}

func (r *ApplicationRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Application, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, candidate_name, email, resume, score, summary, created_at
		 FROM applications ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.CandidateName, &a.Email, &a.Resume, &a.Score, &a.Summary, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

func (r *ApplicationRepo) SetEvaluation(ctx context.Context, id string, score int64, summary string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET score = ?, summary = ? WHERE id = ?`,
		score, summary, id)
	if err != nil {
		return mapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound("application %s not found", id)
	}
	return nil
}
