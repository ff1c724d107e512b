package domain

import (
	"context"
	"time"
)

// Forecast is an AI-generated sales-forecast narrative, refreshed by the
// nightly job and readable by the operator.
type Forecast struct {
	ID        string
	Narrative string
	CreatedAt time.Time
}

// ForecastRepository stores generated forecast narratives.
type ForecastRepository interface {
	Insert(ctx context.Context, f *Forecast) error
	Latest(ctx context.Context) (*Forecast, error)
}
