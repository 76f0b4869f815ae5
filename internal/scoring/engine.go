// Package scoring is the team-performance engine: it aggregates raw
// per-team metrics from support tickets, min-max normalizes them onto a
// comparable 0-100 scale, blends them with configured weights, and ranks
// teams against one another within a single run.
//
// The engine is a pure function of (tickets, config): it performs no I/O,
// holds no state between runs, and two calls with identical inputs produce
// identical reports.
package scoring

import (
	"context"

	"go.uber.org/zap"
)

// QualitySource records which signal fed the quality metric in a run.
// SLA compliance is preferred whenever any team carries response-time
// data; mean sentiment is the fallback. The choice is run-wide so teams
// are never compared across different quality definitions.
type QualitySource string

const (
	QualitySLA       QualitySource = "sla_compliance"
	QualitySentiment QualitySource = "sentiment"
)

// Confidence flags whether a team had enough tickets to be scored.
type Confidence string

const (
	ConfidenceFull         Confidence = "full"
	ConfidenceInsufficient Confidence = "insufficient"
)

// TeamScore is the final per-team output of a run. Teams below the
// minimum-ticket threshold appear with raw metrics only: no score, no
// rank, a gray traffic light, and ConfidenceInsufficient.
type TeamScore struct {
	Team           string            `json:"team"`
	RelativeScore  float64           `json:"relative_score"`
	Level          Level             `json:"performance_level,omitempty"`
	TrafficLight   TrafficLight      `json:"traffic_light"`
	Rank           int               `json:"rank,omitempty"`
	Percentile     float64           `json:"percentile_ranking"`
	DataConfidence Confidence        `json:"data_confidence"`
	Metrics        TeamMetrics       `json:"metrics"`
	Normalized     NormalizedMetrics `json:"normalized_metrics,omitempty"`
}

// Report is the complete result of one scoring run.
type Report struct {
	Teams             map[string]TeamScore `json:"teams"`
	EligibleTeams     int                  `json:"eligible_teams"`
	UnassignedTickets int                  `json:"unassigned_tickets"`
	QualitySource     QualitySource        `json:"quality_source"`
	DroppedMetrics    []Metric             `json:"dropped_metrics,omitempty"`
}

// Engine runs the aggregate → normalize → score → rank → classify pipeline.
type Engine struct {
	cfg    Config
	logger *zap.Logger
}

// NewEngine validates the config once, up front. Invalid weights or
// thresholds never surface mid-run.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &Engine{cfg: cfg, logger: logger.Named("scoring")}, nil
}

// Config returns the parameter set this engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score runs the full pipeline over one ticket batch. It returns
// ErrEmptyDataset when there are no tickets or no record resolves to a
// team; every other data problem degrades per team or per record and is
// reported inside the Report instead of aborting the run.
func (e *Engine) Score(ctx context.Context, tickets []Ticket) (*Report, error) {
	aggregates, unassigned, err := e.aggregate(ctx, tickets)
	if err != nil {
		return nil, err
	}

	var eligible []TeamMetrics
	for _, m := range aggregates {
		if !m.InsufficientData {
			eligible = append(eligible, m)
		}
	}

	source := qualitySource(eligible)
	available := availableMetrics(eligible, source)
	weights := renormalizeWeights(e.cfg.Weights, available)
	normalized := normalize(eligible, available, source)

	scores := make(map[string]float64, len(eligible))
	for _, m := range eligible {
		scores[m.Team] = relativeScore(normalized[m.Team], weights)
	}
	rankings := rankTeams(scores)

	report := &Report{
		Teams:             make(map[string]TeamScore, len(aggregates)),
		EligibleTeams:     len(eligible),
		UnassignedTickets: unassigned,
		QualitySource:     source,
		DroppedMetrics:    droppedMetrics(available),
	}

	for _, m := range aggregates {
		if m.InsufficientData {
			report.Teams[m.Team] = TeamScore{
				Team:           m.Team,
				TrafficLight:   LightFor(""),
				DataConfidence: ConfidenceInsufficient,
				Metrics:        m,
			}
			continue
		}

		score := scores[m.Team]
		level := classifyScore(score, e.cfg.Cutoffs)
		ranking := rankings[m.Team]
		report.Teams[m.Team] = TeamScore{
			Team:           m.Team,
			RelativeScore:  score,
			Level:          level,
			TrafficLight:   LightFor(level),
			Rank:           ranking.Rank,
			Percentile:     ranking.Percentile,
			DataConfidence: ConfidenceFull,
			Metrics:        m,
			Normalized:     normalized[m.Team],
		}
	}

	e.logger.Info("scoring run complete",
		zap.Int("teams", len(aggregates)),
		zap.Int("eligible_teams", len(eligible)),
		zap.Int("unassigned_tickets", unassigned),
		zap.String("quality_source", string(source)))

	return report, nil
}

// qualitySource picks SLA compliance when any eligible team has response
// data, mean sentiment otherwise.
func qualitySource(eligible []TeamMetrics) QualitySource {
	for _, m := range eligible {
		if m.SLACompliance != nil {
			return QualitySLA
		}
	}
	return QualitySentiment
}

func droppedMetrics(available []Metric) []Metric {
	if len(available) == len(metricOrder) {
		return nil
	}
	kept := make(map[Metric]bool, len(available))
	for _, m := range available {
		kept[m] = true
	}
	var dropped []Metric
	for _, m := range metricOrder {
		if !kept[m] {
			dropped = append(dropped, m)
		}
	}
	return dropped
}
