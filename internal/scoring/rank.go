package scoring

import "sort"

// Ranking is a team's position within the eligible cohort.
type Ranking struct {
	Rank       int
	Percentile float64
}

// rankTeams orders teams by score descending and assigns standard
// competition ranks: tied scores share a rank, and the next distinct score
// takes its 1-based position in the sorted sequence — scores 90/80/80/70
// rank 1/2/2/4, not 1/2/2/3.
//
// Percentile expresses "better than X% of peers": (N-rank)/(N-1)*100.
// A cohort of one is top of its own cohort and gets 100.
func rankTeams(scores map[string]float64) map[string]Ranking {
	type entry struct {
		team  string
		score float64
	}

	ordered := make([]entry, 0, len(scores))
	for team, score := range scores {
		ordered = append(ordered, entry{team: team, score: score})
	}
	// Team name as tie-breaker keeps the sorted order, and therefore the
	// whole run, deterministic.
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].score != ordered[j].score {
			return ordered[i].score > ordered[j].score
		}
		return ordered[i].team < ordered[j].team
	})

	n := len(ordered)
	out := make(map[string]Ranking, n)
	rank := 0
	for i, e := range ordered {
		if i == 0 || e.score != ordered[i-1].score {
			rank = i + 1
		}
		r := Ranking{Rank: rank}
		if n == 1 {
			r.Percentile = 100
		} else {
			r.Percentile = float64(n-rank) / float64(n-1) * 100
		}
		out[e.team] = r
	}
	return out
}
