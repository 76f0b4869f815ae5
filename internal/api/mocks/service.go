package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// MockPerformanceService is a mock implementation of the PerformanceService
// interface for testing the handler layer.
type MockPerformanceService struct {
	GetPerformanceReportFunc   func(ctx context.Context, start, end time.Time) (*scoring.Report, error)
	GetTeamScoreFunc           func(ctx context.Context, team string, start, end time.Time) (scoring.TeamScore, error)
	GetTeamRecommendationsFunc func(ctx context.Context, team, analysisType string, start, end time.Time) ([]string, error)
}

// GetPerformanceReport implements the PerformanceService interface
func (m *MockPerformanceService) GetPerformanceReport(ctx context.Context, start, end time.Time) (*scoring.Report, error) {
	if m.GetPerformanceReportFunc != nil {
		return m.GetPerformanceReportFunc(ctx, start, end)
	}
	return nil, errors.New("GetPerformanceReportFunc not implemented")
}

// GetTeamScore implements the PerformanceService interface
func (m *MockPerformanceService) GetTeamScore(ctx context.Context, team string, start, end time.Time) (scoring.TeamScore, error) {
	if m.GetTeamScoreFunc != nil {
		return m.GetTeamScoreFunc(ctx, team, start, end)
	}
	return scoring.TeamScore{}, errors.New("GetTeamScoreFunc not implemented")
}

// GetTeamRecommendations implements the PerformanceService interface
func (m *MockPerformanceService) GetTeamRecommendations(ctx context.Context, team, analysisType string, start, end time.Time) ([]string, error) {
	if m.GetTeamRecommendationsFunc != nil {
		return m.GetTeamRecommendationsFunc(ctx, team, analysisType, start, end)
	}
	return nil, errors.New("GetTeamRecommendationsFunc not implemented")
}
