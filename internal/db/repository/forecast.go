package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type ForecastRepo struct {
	db *sql.DB
}

func NewForecastRepo(db *sql.DB) *ForecastRepo {
	return &ForecastRepo{db: db}
}

func (r *ForecastRepo) Insert(ctx context.Context, f *domain.Forecast) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO forecasts (id, narrative, created_at) VALUES (?, ?, ?)`,
		f.ID, f.Narrative, f.CreatedAt)
	return mapDBError(err)
}

func (r *ForecastRepo) Latest(ctx context.Context) (*domain.Forecast, error) {
	var f domain.Forecast
	err := r.db.QueryRowContext(ctx,
		`SELECT id, narrative, created_at FROM forecasts ORDER BY created_at DESC, id DESC LIMIT 1`).
		Scan(&f.ID, &f.Narrative, &f.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &f, nil
}
