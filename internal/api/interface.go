package api

import (
	"context"
	"time"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// PerformanceService is the scoring surface the handlers expose over HTTP.
type PerformanceService interface {
	GetPerformanceReport(ctx context.Context, start, end time.Time) (*scoring.Report, error)
	GetTeamScore(ctx context.Context, team string, start, end time.Time) (scoring.TeamScore, error)
	GetTeamRecommendations(ctx context.Context, team, analysisType string, start, end time.Time) ([]string, error)
}
