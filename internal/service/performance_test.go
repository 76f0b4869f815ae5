package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/recommend"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/service/mocks"
)

var (
	testStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
)

func testTickets(team string, n int, responseMinutes, sentiment float64) []scoring.Ticket {
	out := make([]scoring.Ticket, 0, n)
	for i := 0; i < n; i++ {
		rm := responseMinutes + float64(i)
		s := sentiment
		out = append(out, scoring.Ticket{
			ID:              fmt.Sprintf("%s-%d", team, i),
			Team:            team,
			CreatedAt:       testStart.Add(time.Duration(i) * time.Hour),
			ResponseMinutes: &rm,
			Sentiment:       &s,
		})
	}
	return out
}

func testEngine(t *testing.T) *scoring.Engine {
	t.Helper()
	e, err := scoring.NewEngine(scoring.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return e
}

func TestNewPerformanceService(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		svc := NewPerformanceService(&mocks.MockTicketRepository{}, testEngine(t), recommend.DefaultTable(), zap.NewNop())
		assert.NotNil(t, svc)
	})

	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPerformanceService(nil, testEngine(t), nil, zap.NewNop())
		})
	})

	t.Run("nil engine panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPerformanceService(&mocks.MockTicketRepository{}, nil, nil, zap.NewNop())
		})
	})

	t.Run("nil logger and table get defaults", func(t *testing.T) {
		svc := NewPerformanceService(&mocks.MockTicketRepository{}, testEngine(t), nil, nil)
		assert.NotNil(t, svc.logger)
		assert.NotNil(t, svc.recs)
	})
}

func TestGetPerformanceReport(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("successful run", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				assert.Equal(t, testStart, s)
				assert.Equal(t, testEnd, e)
				tickets := testTickets("Billing", 10, 15, 0.3)
				return append(tickets, testTickets("Shipping", 10, 80, -0.2)...), nil
			},
		}

		svc := NewPerformanceService(mockRepo, testEngine(t), nil, logger)
		report, err := svc.GetPerformanceReport(ctx, testStart, testEnd)

		require.NoError(t, err)
		assert.Len(t, report.Teams, 2)
		assert.Equal(t, 1, report.Teams["Billing"].Rank)
		assert.Equal(t, 2, report.Teams["Shipping"].Rank)
	})

	t.Run("no tickets in window", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				return nil, nil
			},
		}

		svc := NewPerformanceService(mockRepo, testEngine(t), nil, logger)
		report, err := svc.GetPerformanceReport(ctx, testStart, testEnd)

		assert.ErrorIs(t, err, ErrNoTickets)
		assert.Nil(t, report)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				return nil, errors.New("database connection failed")
			},
		}

		svc := NewPerformanceService(mockRepo, testEngine(t), nil, logger)
		report, err := svc.GetPerformanceReport(ctx, testStart, testEnd)

		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.Contains(t, err.Error(), "database connection failed")
		assert.Nil(t, report)
	})

	t.Run("only unlabeled tickets maps to no tickets", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				rm := 10.0
				return []scoring.Ticket{{ID: "x", CreatedAt: testStart, ResponseMinutes: &rm}}, nil
			},
		}

		svc := NewPerformanceService(mockRepo, testEngine(t), nil, logger)
		_, err := svc.GetPerformanceReport(ctx, testStart, testEnd)

		assert.ErrorIs(t, err, ErrNoTickets)
	})
}

func TestGetTeamScore(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mocks.MockTicketRepository{
		GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
			return testTickets("Billing", 10, 15, 0.3), nil
		},
	}
	svc := NewPerformanceService(mockRepo, testEngine(t), nil, zap.NewNop())

	t.Run("known team", func(t *testing.T) {
		ts, err := svc.GetTeamScore(ctx, "Billing", testStart, testEnd)
		require.NoError(t, err)
		assert.Equal(t, "Billing", ts.Team)
		assert.Equal(t, 1, ts.Rank)
		assert.InDelta(t, 100.0, ts.Percentile, 1e-9)
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := svc.GetTeamScore(ctx, "Nope", testStart, testEnd)
		assert.ErrorIs(t, err, ErrUnknownTeam)
	})
}

func TestGetTeamRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("advice follows the team's level", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				tickets := testTickets("Fast", 10, 10, 0.4)
				return append(tickets, testTickets("Slow", 10, 110, -0.4)...), nil
			},
		}
		svc := NewPerformanceService(mockRepo, testEngine(t), nil, zap.NewNop())

		advice, err := svc.GetTeamRecommendations(ctx, "Slow", "response_time", testStart, testEnd)
		require.NoError(t, err)
		require.NotEmpty(t, advice)
		assert.Contains(t, advice[len(advice)-1], "response_time")
	})

	t.Run("empty analysis type falls back to general", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				return testTickets("Billing", 10, 15, 0.3), nil
			},
		}
		svc := NewPerformanceService(mockRepo, testEngine(t), nil, zap.NewNop())

		advice, err := svc.GetTeamRecommendations(ctx, "Billing", "", testStart, testEnd)
		require.NoError(t, err)
		assert.NotEmpty(t, advice)
	})

	t.Run("insufficient team gets the data warning", func(t *testing.T) {
		mockRepo := &mocks.MockTicketRepository{
			GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
				tickets := testTickets("Big", 10, 15, 0.3)
				return append(tickets, testTickets("Tiny", 2, 20, 0.1)...), nil
			},
		}
		svc := NewPerformanceService(mockRepo, testEngine(t), nil, zap.NewNop())

		advice, err := svc.GetTeamRecommendations(ctx, "Tiny", "general", testStart, testEnd)
		require.NoError(t, err)
		require.Len(t, advice, 1)
		assert.Contains(t, advice[0], "Not enough tickets")
	})
}

func TestSwapEngine(t *testing.T) {
	mockRepo := &mocks.MockTicketRepository{
		GetTicketsInPeriodFunc: func(ctx context.Context, s, e time.Time) ([]scoring.Ticket, error) {
			return testTickets("Solo", 4, 15, 0.3), nil
		},
	}
	svc := NewPerformanceService(mockRepo, testEngine(t), nil, zap.NewNop())
	ctx := context.Background()

	// Below the default threshold of 5.
	ts, err := svc.GetTeamScore(ctx, "Solo", testStart, testEnd)
	require.NoError(t, err)
	assert.Equal(t, scoring.ConfidenceInsufficient, ts.DataConfidence)

	cfg := scoring.DefaultConfig()
	cfg.MinTeamTickets = 3
	relaxed, err := scoring.NewEngine(cfg, zap.NewNop())
	require.NoError(t, err)
	svc.SwapEngine(relaxed)

	ts, err = svc.GetTeamScore(ctx, "Solo", testStart, testEnd)
	require.NoError(t, err)
	assert.Equal(t, scoring.ConfidenceFull, ts.DataConfidence)

	// A nil swap is ignored.
	svc.SwapEngine(nil)
	_, err = svc.GetTeamScore(ctx, "Solo", testStart, testEnd)
	require.NoError(t, err)
}
