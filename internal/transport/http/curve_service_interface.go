package http

import (
	"context"

	"rfrcli/internal/curve"
	"rfrcli/internal/services"
)

// CurveServiceInterface is the service surface the handlers depend on.
// Kept as an interface so handler tests can stub the pipeline.
type CurveServiceInterface interface {
	ListReleases(ctx context.Context) ([]services.Release, error)
	GetCurve(ctx context.Context, dateKey string, limit int, overwrite bool) (*curve.Selection, error)
}
