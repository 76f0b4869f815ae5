package scoring

// renormalizeWeights restricts the configured weights to the metrics that
// survived availability filtering and rescales them proportionally so they
// sum to 1 again. Scoring against a dropped metric's zero would punish
// every team equally but distort the blend between the rest.
func renormalizeWeights(w Weights, available []Metric) Weights {
	kept := make(Weights, len(available))
	var sum float64
	for _, m := range available {
		kept[m] = w[m]
		sum += w[m]
	}
	if sum <= 0 {
		// All remaining weight sat on dropped metrics; fall back to an
		// equal split across what is left.
		share := 1.0 / float64(len(available))
		for _, m := range available {
			kept[m] = share
		}
		return kept
	}
	for m := range kept {
		kept[m] /= sum
	}
	return kept
}

// relativeScore blends a team's normalized metrics with the (renormalized)
// weights. A weighted average of values in [0,100] stays in [0,100]; the
// clamp only guards float drift.
func relativeScore(norm NormalizedMetrics, weights Weights) float64 {
	var score float64
	for _, m := range metricOrder {
		w, ok := weights[m]
		if !ok {
			continue
		}
		score += w * norm[m]
	}
	return clamp(score, 0, 100)
}
