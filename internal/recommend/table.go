// Package recommend holds the advisory-text lookup consumed by reporting
// layers. The table is keyed by analysis type and performance level and is
// immutable: extending it returns a new table, so no caller can leak
// entries into another caller's run.
package recommend

import (
	"fmt"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// GeneralAnalysis is the fallback key used when an analysis type has no
// entries of its own.
const GeneralAnalysis = "general"

// Table is a read-only advisory lookup. Use DefaultTable or Extend to
// obtain one; the zero value answers every query with nothing.
type Table struct {
	entries map[string]map[scoring.Level][]string
}

// DefaultTable returns the built-in advisory catalog.
func DefaultTable() *Table {
	return &Table{entries: map[string]map[scoring.Level][]string{
		GeneralAnalysis: {
			scoring.LevelExcellent: {
				"Document the team's playbook so other teams can adopt it",
				"Consider rotating members into struggling teams as mentors",
			},
			scoring.LevelGood: {
				"Review the gap to the top-ranked team for quick wins",
				"Keep current staffing and routing rules stable",
			},
			scoring.LevelAverage: {
				"Audit ticket routing for mismatched skills",
				"Schedule a response-time workshop with the team leads",
			},
			scoring.LevelPoor: {
				"Review SLA breaches ticket by ticket with the team",
				"Rebalance workload from overloaded agents",
				"Pair agents with a top-ranked team for a sprint",
			},
		},
		"response_time": {
			scoring.LevelAverage: {
				"Introduce canned first responses for the most common intents",
			},
			scoring.LevelPoor: {
				"Add coverage during the hours with the slowest first response",
				"Alert on tickets approaching the SLA threshold",
			},
		},
		"sentiment": {
			scoring.LevelPoor: {
				"Sample negative-sentiment conversations for tone review",
				"Escalate repeat negative-sentiment customers to senior agents",
			},
		},
	}}
}

// Advise returns the advisory strings for (analysisType, level), falling
// back to the general catalog when the analysis type has no entry for the
// level. Poor and excellent results additionally get a call to action
// tagged with the analysis type. The returned slice is always fresh.
func (t *Table) Advise(analysisType string, level scoring.Level) []string {
	var out []string
	out = append(out, t.lookup(analysisType, level)...)

	switch level {
	case scoring.LevelPoor:
		out = append(out, fmt.Sprintf("Action required: create an improvement plan for %s within two weeks", analysisType))
	case scoring.LevelExcellent:
		out = append(out, fmt.Sprintf("Share this team's %s practices in the next support all-hands", analysisType))
	}
	return out
}

func (t *Table) lookup(analysisType string, level scoring.Level) []string {
	if t == nil || t.entries == nil {
		return nil
	}
	if byLevel, ok := t.entries[analysisType]; ok {
		if advice, ok := byLevel[level]; ok {
			return advice
		}
	}
	if analysisType == GeneralAnalysis {
		return nil
	}
	return t.entries[GeneralAnalysis][level]
}

// Extend returns a new table with extra advice appended under
// (analysisType, level). The receiver is left untouched.
func (t *Table) Extend(analysisType string, level scoring.Level, advice ...string) *Table {
	out := &Table{entries: make(map[string]map[scoring.Level][]string)}
	if t != nil {
		for at, byLevel := range t.entries {
			out.entries[at] = make(map[scoring.Level][]string, len(byLevel))
			for lvl, strs := range byLevel {
				out.entries[at][lvl] = append([]string(nil), strs...)
			}
		}
	}
	if out.entries[analysisType] == nil {
		out.entries[analysisType] = make(map[scoring.Level][]string)
	}
	out.entries[analysisType][level] = append(out.entries[analysisType][level], advice...)
	return out
}
