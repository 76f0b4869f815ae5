package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

func writeScoringFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScoring(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadScoring("")
		require.NoError(t, err)
		assert.Equal(t, scoring.DefaultConfig(), cfg)
	})

	t.Run("full file overrides everything", func(t *testing.T) {
		path := writeScoringFile(t, `
weights:
  response_time: 0.4
  quality: 0.4
  efficiency: 0.1
  capacity: 0.1
sla_minutes: 30
min_tickets_per_team: 10
levels:
  excellent: 95
  good: 80
  average: 65
`)

		cfg, err := LoadScoring(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.4, cfg.Weights[scoring.MetricResponseTime], 1e-9)
		assert.InDelta(t, 30.0, cfg.SLAMinutes, 1e-9)
		assert.Equal(t, 10, cfg.MinTeamTickets)
		assert.InDelta(t, 95.0, cfg.Cutoffs.Excellent, 1e-9)
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		path := writeScoringFile(t, "sla_minutes: 45\n")

		cfg, err := LoadScoring(path)
		require.NoError(t, err)
		assert.InDelta(t, 45.0, cfg.SLAMinutes, 1e-9)
		assert.Equal(t, scoring.DefaultConfig().Weights, cfg.Weights)
		assert.Equal(t, scoring.DefaultConfig().Cutoffs, cfg.Cutoffs)
	})

	t.Run("weights block replaces defaults wholesale", func(t *testing.T) {
		path := writeScoringFile(t, `
weights:
  response_time: 0.5
  quality: 0.5
`)

		cfg, err := LoadScoring(path)
		require.NoError(t, err)
		assert.Len(t, cfg.Weights, 2)
		assert.InDelta(t, 1.0, cfg.Weights.Sum(), scoring.WeightTolerance)
	})

	t.Run("invalid weights fail eagerly", func(t *testing.T) {
		path := writeScoringFile(t, `
weights:
  response_time: 0.9
  quality: 0.9
`)

		_, err := LoadScoring(path)
		assert.ErrorIs(t, err, scoring.ErrInvalidConfig)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := writeScoringFile(t, "weights: [not a map\n")

		_, err := LoadScoring(path)
		assert.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadScoring(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
