package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("weights within tolerance pass", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights[MetricResponseTime] += 5e-7

		assert.NoError(t, cfg.Validate())
	})

	t.Run("weights not summing to one fail", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights[MetricQuality] = 0.5

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "sum")
	})

	t.Run("unknown metric name fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights["velocity"] = 0.0

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("negative weight fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights[MetricCapacity] = -0.15
		cfg.Weights[MetricQuality] = 0.65

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("empty weights fail", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights = Weights{}

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("non-positive SLA threshold fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SLAMinutes = 0

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("zero minimum tickets fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MinTeamTickets = 0

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("non-decreasing cutoffs fail", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Cutoffs = LevelCutoffs{Excellent: 75, Good: 75, Average: 60}

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}
