package scoring

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TeamMetrics is the raw per-team aggregate computed fresh for every run.
// Optional figures are pointers so a metric the export never carried stays
// distinguishable from a genuine zero.
type TeamMetrics struct {
	Team        string `json:"team"`
	TicketCount int    `json:"ticket_count"`

	MeanResponseMinutes   *float64 `json:"mean_response_minutes,omitempty"`
	MedianResponseMinutes *float64 `json:"median_response_minutes,omitempty"`

	// SLACompliance is the fraction of tickets with response data answered
	// within the SLA threshold.
	SLACompliance *float64 `json:"sla_compliance,omitempty"`

	MeanSentiment *float64 `json:"mean_sentiment,omitempty"`

	// Throughput is tickets resolved per hour of recorded handling time, or
	// plain ticket count when the export has no resolution durations.
	Throughput *float64 `json:"throughput,omitempty"`

	// VolumeShare is this team's fraction of all team-labeled tickets.
	VolumeShare *float64 `json:"volume_share,omitempty"`

	InsufficientData bool `json:"insufficient_data"`
}

// groupTickets buckets tickets by exact team label. Records without a team
// label are counted, not silently dropped.
func groupTickets(tickets []Ticket) (groups map[string][]Ticket, unassigned int) {
	groups = make(map[string][]Ticket)
	for _, t := range tickets {
		if t.Team == "" {
			unassigned++
			continue
		}
		groups[t.Team] = append(groups[t.Team], t)
	}
	return groups, unassigned
}

// aggregate computes per-team raw metrics. Team aggregates are independent
// of one another, so the work fans out across a bounded worker group and
// joins before any cross-team stage runs.
func (e *Engine) aggregate(ctx context.Context, tickets []Ticket) ([]TeamMetrics, int, error) {
	if len(tickets) == 0 {
		return nil, 0, fmt.Errorf("%w: no tickets provided", ErrEmptyDataset)
	}

	groups, unassigned := groupTickets(tickets)
	if len(groups) == 0 {
		return nil, unassigned, fmt.Errorf("%w: no ticket carries a team label", ErrEmptyDataset)
	}

	teams := make([]string, 0, len(groups))
	totalLabeled := 0
	for team, group := range groups {
		teams = append(teams, team)
		totalLabeled += len(group)
	}
	sort.Strings(teams)

	results := make([]TeamMetrics, len(teams))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, team := range teams {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := aggregateTeam(team, groups[team], e.cfg.SLAMinutes, totalLabeled)
			m.InsufficientData = m.TicketCount < e.cfg.MinTeamTickets
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, unassigned, fmt.Errorf("aggregate teams: %w", err)
	}

	return results, unassigned, nil
}

func aggregateTeam(team string, tickets []Ticket, slaMinutes float64, totalLabeled int) TeamMetrics {
	m := TeamMetrics{
		Team:        team,
		TicketCount: len(tickets),
	}

	var responseTimes []float64
	var withinSLA int
	var sentimentSum float64
	var sentimentCount int
	var resolvedCount int
	var resolutionMinutes float64

	for _, t := range tickets {
		if rt, ok := t.ResponseTime(); ok {
			responseTimes = append(responseTimes, rt)
			if rt <= slaMinutes {
				withinSLA++
			}
		}
		if t.Sentiment != nil {
			sentimentSum += *t.Sentiment
			sentimentCount++
		}
		if t.ResolutionMinutes != nil && *t.ResolutionMinutes > 0 {
			resolvedCount++
			resolutionMinutes += *t.ResolutionMinutes
		}
	}

	if len(responseTimes) > 0 {
		mean := meanOf(responseTimes)
		med := medianOf(responseTimes)
		sla := float64(withinSLA) / float64(len(responseTimes))
		m.MeanResponseMinutes = &mean
		m.MedianResponseMinutes = &med
		m.SLACompliance = &sla
	}

	if sentimentCount > 0 {
		mean := sentimentSum / float64(sentimentCount)
		m.MeanSentiment = &mean
	}

	// Resolution durations give tickets-per-hour; without them the plain
	// ticket count stands in as the throughput proxy.
	var throughput float64
	if resolutionMinutes > 0 {
		throughput = float64(resolvedCount) / (resolutionMinutes / 60)
	} else {
		throughput = float64(len(tickets))
	}
	m.Throughput = &throughput

	if totalLabeled > 0 {
		share := float64(len(tickets)) / float64(totalLabeled)
		m.VolumeShare = &share
	}

	return m
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
