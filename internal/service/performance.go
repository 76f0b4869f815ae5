package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/recommend"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

const (
	dbTimeout = 1 * time.Second
)

var (
	ErrNoTickets      = errors.New("no tickets found")
	ErrUnknownTeam    = errors.New("unknown team")
	ErrStorageFailure = errors.New("storage failure")
)

// PerformanceService runs the scoring engine over stored tickets and
// serves per-team results and recommendations. The engine is held behind
// an atomic pointer so a config reload can swap it without interrupting
// in-flight requests; each request snapshots one engine.
type PerformanceService struct {
	storage TicketRepository
	engine  atomic.Pointer[scoring.Engine]
	recs    *recommend.Table
	logger  *zap.Logger
}

// NewPerformanceService creates a new PerformanceService instance.
func NewPerformanceService(storage TicketRepository, engine *scoring.Engine, recs *recommend.Table, logger *zap.Logger) *PerformanceService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if engine == nil {
		panic("engine must not be nil")
	}
	if recs == nil {
		recs = recommend.DefaultTable()
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	s := &PerformanceService{
		storage: storage,
		recs:    recs,
		logger:  logger.Named("performance"),
	}
	s.engine.Store(engine)
	return s
}

// SwapEngine replaces the scoring engine, typically after a scoring config
// reload. Requests already running keep the engine they started with.
func (s *PerformanceService) SwapEngine(engine *scoring.Engine) {
	if engine == nil {
		return
	}
	s.engine.Store(engine)
	s.logger.Info("scoring engine swapped")
}

// GetPerformanceReport scores every team over the window's tickets.
func (s *PerformanceService) GetPerformanceReport(ctx context.Context, start, end time.Time) (*scoring.Report, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tickets, err := s.storage.GetTicketsInPeriod(dbCtx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if len(tickets) == 0 {
		return nil, ErrNoTickets
	}

	report, err := s.engine.Load().Score(ctx, tickets)
	if err != nil {
		if errors.Is(err, scoring.ErrEmptyDataset) {
			return nil, fmt.Errorf("%w: %v", ErrNoTickets, err)
		}
		return nil, fmt.Errorf("score tickets: %w", err)
	}

	s.logger.Info("performance report computed",
		zap.Int("tickets", len(tickets)),
		zap.Int("teams", len(report.Teams)),
		zap.Int("eligible_teams", report.EligibleTeams),
		zap.Time("start", start),
		zap.Time("end", end))

	return report, nil
}

// GetTeamScore returns one team's result from a fresh run over the window.
func (s *PerformanceService) GetTeamScore(ctx context.Context, team string, start, end time.Time) (scoring.TeamScore, error) {
	report, err := s.GetPerformanceReport(ctx, start, end)
	if err != nil {
		return scoring.TeamScore{}, err
	}

	ts, ok := report.Teams[team]
	if !ok {
		return scoring.TeamScore{}, fmt.Errorf("%w: %q", ErrUnknownTeam, team)
	}
	return ts, nil
}

// GetTeamRecommendations returns advisory text for one team, derived from
// its performance level in the window.
func (s *PerformanceService) GetTeamRecommendations(ctx context.Context, team, analysisType string, start, end time.Time) ([]string, error) {
	if analysisType == "" {
		analysisType = recommend.GeneralAnalysis
	}

	ts, err := s.GetTeamScore(ctx, team, start, end)
	if err != nil {
		return nil, err
	}

	if ts.DataConfidence == scoring.ConfidenceInsufficient {
		min := s.engine.Load().Config().MinTeamTickets
		return []string{
			fmt.Sprintf("Not enough tickets to score this team; at least %d are needed in the window", min),
		}, nil
	}

	return s.recs.Advise(analysisType, ts.Level), nil
}
