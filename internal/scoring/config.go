package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Metric names one of the four signals blended into a team's relative score.
type Metric string

const (
	MetricResponseTime Metric = "response_time"
	MetricQuality      Metric = "quality"
	MetricEfficiency   Metric = "efficiency"
	MetricCapacity     Metric = "capacity"
)

// metricOrder fixes a deterministic iteration order; maps alone would make
// run output ordering depend on hash seeds.
var metricOrder = []Metric{MetricResponseTime, MetricQuality, MetricEfficiency, MetricCapacity}

// WeightTolerance is the slack allowed when checking that weights sum to 1.
const WeightTolerance = 1e-6

var (
	ErrEmptyDataset  = errors.New("empty ticket dataset")
	ErrInvalidConfig = errors.New("invalid scoring config")
)

// Weights maps each metric to its share of the relative score.
type Weights map[Metric]float64

// Sum returns the total of all configured weights.
func (w Weights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// clone returns an independent copy so renormalization never mutates the
// caller's configuration.
func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// LevelCutoffs holds the score thresholds separating performance levels.
// A score at or above a cutoff earns the corresponding level; anything
// below Average is poor.
type LevelCutoffs struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Good      float64 `yaml:"good" json:"good"`
	Average   float64 `yaml:"average" json:"average"`
}

// Config is the full parameter set for one scoring run. It is constructed
// once by the configuration layer, validated eagerly, and passed into
// NewEngine — the engine itself carries no ambient defaults.
type Config struct {
	Weights        Weights      `yaml:"weights" json:"weights"`
	SLAMinutes     float64      `yaml:"sla_minutes" json:"sla_minutes"`
	MinTeamTickets int          `yaml:"min_tickets_per_team" json:"min_tickets_per_team"`
	Cutoffs        LevelCutoffs `yaml:"levels" json:"levels"`
}

// DefaultConfig returns the stock parameter set: quality weighs heaviest,
// SLA threshold of one hour, and five tickets minimum per team.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			MetricResponseTime: 0.30,
			MetricQuality:      0.35,
			MetricEfficiency:   0.20,
			MetricCapacity:     0.15,
		},
		SLAMinutes:     60,
		MinTeamTickets: 5,
		Cutoffs: LevelCutoffs{
			Excellent: 90,
			Good:      75,
			Average:   60,
		},
	}
}

// Validate checks the config before any scoring begins. Weight problems are
// fatal here, never mid-computation.
func (c Config) Validate() error {
	if len(c.Weights) == 0 {
		return fmt.Errorf("%w: no weights configured", ErrInvalidConfig)
	}
	for name, w := range c.Weights {
		switch name {
		case MetricResponseTime, MetricQuality, MetricEfficiency, MetricCapacity:
		default:
			return fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, name)
		}
		if w < 0 || w > 1 {
			return fmt.Errorf("%w: weight for %q is %v, must be in [0,1]", ErrInvalidConfig, name, w)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %v, must sum to 1.0", ErrInvalidConfig, sum)
	}
	if c.SLAMinutes <= 0 {
		return fmt.Errorf("%w: sla_minutes must be positive, got %v", ErrInvalidConfig, c.SLAMinutes)
	}
	if c.MinTeamTickets < 1 {
		return fmt.Errorf("%w: min_tickets_per_team must be at least 1, got %d", ErrInvalidConfig, c.MinTeamTickets)
	}
	cut := c.Cutoffs
	if cut.Excellent <= cut.Good || cut.Good <= cut.Average {
		return fmt.Errorf("%w: level cutoffs must be strictly decreasing (excellent > good > average)", ErrInvalidConfig)
	}
	if cut.Excellent > 100 || cut.Average < 0 {
		return fmt.Errorf("%w: level cutoffs must lie in [0,100]", ErrInvalidConfig)
	}
	return nil
}
