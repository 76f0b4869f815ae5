package recommend

import (
	"testing"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAdvise(t *testing.T) {
	table := DefaultTable()

	t.Run("specific analysis type wins over general", func(t *testing.T) {
		got := table.Advise("response_time", scoring.LevelPoor)

		assert.Contains(t, got, "Add coverage during the hours with the slowest first response")
		assert.NotContains(t, got, "Review SLA breaches ticket by ticket with the team")
	})

	t.Run("unknown analysis type falls back to general", func(t *testing.T) {
		got := table.Advise("workload", scoring.LevelAverage)

		assert.Contains(t, got, "Audit ticket routing for mismatched skills")
	})

	t.Run("poor level appends a tagged call to action", func(t *testing.T) {
		got := table.Advise("sentiment", scoring.LevelPoor)

		require.NotEmpty(t, got)
		assert.Contains(t, got[len(got)-1], "Action required")
		assert.Contains(t, got[len(got)-1], "sentiment")
	})

	t.Run("excellent level appends a tagged call to action", func(t *testing.T) {
		got := table.Advise("workload", scoring.LevelExcellent)

		require.NotEmpty(t, got)
		assert.Contains(t, got[len(got)-1], "workload")
	})

	t.Run("mid levels get no call to action", func(t *testing.T) {
		got := table.Advise("workload", scoring.LevelGood)

		for _, s := range got {
			assert.NotContains(t, s, "Action required")
		}
	})

	t.Run("nil table answers with nothing for mid levels", func(t *testing.T) {
		var empty *Table
		assert.Empty(t, empty.Advise(GeneralAnalysis, scoring.LevelGood))
	})
}

func TestTableExtend(t *testing.T) {
	t.Run("extension is visible in the new table only", func(t *testing.T) {
		base := DefaultTable()
		extended := base.Extend("workload", scoring.LevelGood, "Hire one more agent for peak hours")

		assert.Contains(t, extended.Advise("workload", scoring.LevelGood), "Hire one more agent for peak hours")
		assert.NotContains(t, base.Advise("workload", scoring.LevelGood), "Hire one more agent for peak hours")
	})

	t.Run("repeated advise calls cannot mutate the table", func(t *testing.T) {
		table := DefaultTable()

		first := table.Advise(GeneralAnalysis, scoring.LevelPoor)
		first[0] = "tampered"
		second := table.Advise(GeneralAnalysis, scoring.LevelPoor)

		assert.NotEqual(t, "tampered", second[0])
	})

	t.Run("extending a nil table works", func(t *testing.T) {
		var empty *Table
		got := empty.Extend("workload", scoring.LevelPoor, "advice")

		assert.Contains(t, got.Advise("workload", scoring.LevelPoor), "advice")
	})
}
