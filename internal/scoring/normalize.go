package scoring

// NormalizedMetrics holds a team's per-metric values rescaled to [0,100]
// where 100 always denotes the best team in the cohort.
type NormalizedMetrics map[Metric]float64

// neutralScore is assigned when a metric has zero variance across the
// cohort: with every team identical there is no basis to separate them.
const neutralScore = 50.0

// lowerIsBetter marks metrics whose raw value improves downward; their
// scaled value is inverted so 100 stays the best.
func lowerIsBetter(m Metric) bool {
	return m == MetricResponseTime
}

// metricValue returns the raw figure feeding a metric, and whether this
// team carries it. The quality metric reads SLA compliance or mean
// sentiment depending on the run-wide source.
func (t TeamMetrics) metricValue(m Metric, source QualitySource) (float64, bool) {
	var v *float64
	switch m {
	case MetricResponseTime:
		v = t.MeanResponseMinutes
	case MetricQuality:
		if source == QualitySentiment {
			v = t.MeanSentiment
		} else {
			v = t.SLACompliance
		}
	case MetricEfficiency:
		v = t.Throughput
	case MetricCapacity:
		v = t.VolumeShare
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// availableMetrics reports which metrics every eligible team carries.
// A metric missing from any team is dropped for the whole run so no team
// is scored against data the others do not have.
func availableMetrics(teams []TeamMetrics, source QualitySource) []Metric {
	var out []Metric
	for _, m := range metricOrder {
		carried := true
		for _, t := range teams {
			if _, ok := t.metricValue(m, source); !ok {
				carried = false
				break
			}
		}
		if carried {
			out = append(out, m)
		}
	}
	return out
}

// normalize min-max scales each available metric across the eligible cohort
// onto [0,100], inverting lower-is-better metrics. Zero-variance metrics
// map every team to the neutral score instead of dividing by zero.
func normalize(teams []TeamMetrics, metrics []Metric, source QualitySource) map[string]NormalizedMetrics {
	out := make(map[string]NormalizedMetrics, len(teams))
	for _, t := range teams {
		out[t.Team] = make(NormalizedMetrics, len(metrics))
	}

	for _, m := range metrics {
		lo, hi := cohortRange(teams, m, source)
		for _, t := range teams {
			raw, _ := t.metricValue(m, source)
			out[t.Team][m] = scale(raw, lo, hi, lowerIsBetter(m))
		}
	}
	return out
}

func cohortRange(teams []TeamMetrics, m Metric, source QualitySource) (lo, hi float64) {
	first := true
	for _, t := range teams {
		v, ok := t.metricValue(m, source)
		if !ok {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func scale(v, lo, hi float64, invert bool) float64 {
	if hi == lo {
		return neutralScore
	}
	n := (v - lo) / (hi - lo) * 100
	if invert {
		n = 100 - n
	}
	return clamp(n, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
