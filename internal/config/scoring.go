package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// scoringFile mirrors the scoring YAML. Pointer fields distinguish "not
// set, keep the default" from an explicit value; a weights block replaces
// the default weights wholesale rather than merging into them.
type scoringFile struct {
	Weights        map[string]float64    `yaml:"weights"`
	SLAMinutes     *float64              `yaml:"sla_minutes"`
	MinTeamTickets *int                  `yaml:"min_tickets_per_team"`
	Levels         *scoring.LevelCutoffs `yaml:"levels"`
}

// LoadScoring reads the scoring parameter file (weights, SLA threshold,
// minimum tickets per team, level cut points). Absent fields keep the
// engine defaults; the merged result is validated before it is returned,
// so an invalid file can never reach a scoring run. An empty path returns
// the defaults as-is.
func LoadScoring(path string) (scoring.Config, error) {
	cfg := scoring.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return scoring.Config{}, fmt.Errorf("scoring config: read file: %w", err)
	}

	var file scoringFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return scoring.Config{}, fmt.Errorf("scoring config: parse yaml: %w", err)
	}

	if file.Weights != nil {
		cfg.Weights = make(scoring.Weights, len(file.Weights))
		for name, w := range file.Weights {
			cfg.Weights[scoring.Metric(name)] = w
		}
	}
	if file.SLAMinutes != nil {
		cfg.SLAMinutes = *file.SLAMinutes
	}
	if file.MinTeamTickets != nil {
		cfg.MinTeamTickets = *file.MinTeamTickets
	}
	if file.Levels != nil {
		cfg.Cutoffs = *file.Levels
	}

	if err := cfg.Validate(); err != nil {
		return scoring.Config{}, fmt.Errorf("scoring config: %w", err)
	}
	return cfg, nil
}
