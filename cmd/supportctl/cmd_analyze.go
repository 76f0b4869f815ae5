package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/config"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/recommend"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

var analyzeFlags struct {
	dbPath       string
	start        string
	end          string
	configPath   string
	slaMinutes   float64
	minTickets   int
	jsonOut      bool
	team         string
	analysisType string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [export-file]",
	Short: "Score and rank teams from an export file or the database",
	Long: `Analyze runs the scoring pipeline once and prints a ranked team table.

Tickets come either from an export file given as a positional argument,
or from the database restricted to a --start/--end window:

  supportctl analyze exports/june.csv
  supportctl analyze --db ./data/tickets.db --start 2025-06-01 --end 2025-06-30

Scoring parameters default to the built-in configuration; --config points
at a YAML override, and --sla-minutes / --min-tickets override individual
values on top of that.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.dbPath, "db", "", "SQLite database path used when no export file is given (default $DB_PATH or ./data/tickets.db)")
	f.StringVar(&analyzeFlags.start, "start", "", "Window start (YYYY-MM-DD or RFC 3339; database mode only)")
	f.StringVar(&analyzeFlags.end, "end", "", "Window end (YYYY-MM-DD or RFC 3339; database mode only)")
	f.StringVar(&analyzeFlags.configPath, "config", "", "Scoring configuration YAML path")
	f.Float64Var(&analyzeFlags.slaMinutes, "sla-minutes", 0, "Override the SLA threshold in minutes")
	f.IntVar(&analyzeFlags.minTickets, "min-tickets", 0, "Override the minimum tickets per team")
	f.BoolVar(&analyzeFlags.jsonOut, "json", false, "Emit the full report as JSON instead of a table")
	f.StringVar(&analyzeFlags.team, "team", "", "Also print recommendations for this team")
	f.StringVar(&analyzeFlags.analysisType, "analysis-type", "", "Recommendation focus (response_time, sentiment); default general")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadScoring(analyzeFlags.configPath)
	if err != nil {
		return fmt.Errorf("load scoring config: %w", err)
	}
	if analyzeFlags.slaMinutes > 0 {
		cfg.SLAMinutes = analyzeFlags.slaMinutes
	}
	if analyzeFlags.minTickets > 0 {
		cfg.MinTeamTickets = analyzeFlags.minTickets
	}

	engine, err := scoring.NewEngine(cfg, zap.NewNop())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var tickets []scoring.Ticket
	if len(args) > 0 {
		result, err := loadExport(args[0])
		if err != nil {
			return fmt.Errorf("load export: %w", err)
		}
		if result.Skipped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %d unparseable rows\n", result.Skipped)
		}
		tickets = result.Tickets
	} else {
		if analyzeFlags.start == "" || analyzeFlags.end == "" {
			return fmt.Errorf("database mode needs --start and --end (or pass an export file)")
		}
		start, err := parseDate("start", analyzeFlags.start)
		if err != nil {
			return err
		}
		end, err := parseDate("end", analyzeFlags.end)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("end must not be before start")
		}

		db, repo, err := openRepository(resolveDBPath(analyzeFlags.dbPath))
		if err != nil {
			return err
		}
		defer db.Close()

		tickets, err = repo.GetTicketsInPeriod(ctx, start, end)
		if err != nil {
			return fmt.Errorf("load tickets: %w", err)
		}
	}

	report, err := engine.Score(ctx, tickets)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	if analyzeFlags.jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printReport(cmd, report)

	if analyzeFlags.team != "" {
		printRecommendations(cmd, report, analyzeFlags.team, analyzeFlags.analysisType, cfg.MinTeamTickets)
	}
	return nil
}

// printReport renders the ranked table, eligible teams first, unscored
// teams after them.
func printReport(cmd *cobra.Command, report *scoring.Report) {
	out := cmd.OutOrStdout()

	ordered := make([]scoring.TeamScore, 0, len(report.Teams))
	for _, ts := range report.Teams {
		ordered = append(ordered, ts)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if (a.DataConfidence == scoring.ConfidenceFull) != (b.DataConfidence == scoring.ConfidenceFull) {
			return a.DataConfidence == scoring.ConfidenceFull
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Team < b.Team
	})

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTEAM\tSCORE\tLEVEL\tPERCENTILE\tTICKETS")
	for _, ts := range ordered {
		if ts.DataConfidence == scoring.ConfidenceInsufficient {
			fmt.Fprintf(w, "-\t%s\t-\tnot scored\t-\t%d\n", ts.Team, ts.Metrics.TicketCount)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s (%s)\t%.1f\t%d\n",
			ts.Rank, ts.Team, ts.RelativeScore, ts.Level, ts.TrafficLight.Label,
			ts.Percentile, ts.Metrics.TicketCount)
	}
	w.Flush()

	fmt.Fprintf(out, "\nEligible teams: %d  Unassigned tickets: %d  Quality source: %s\n",
		report.EligibleTeams, report.UnassignedTickets, report.QualitySource)
	if len(report.DroppedMetrics) > 0 {
		fmt.Fprintf(out, "Dropped metrics (missing data): %v\n", report.DroppedMetrics)
	}
}

func printRecommendations(cmd *cobra.Command, report *scoring.Report, team, analysisType string, minTickets int) {
	out := cmd.OutOrStdout()

	if analysisType == "" {
		analysisType = recommend.GeneralAnalysis
	}

	ts, ok := report.Teams[team]
	if !ok {
		fmt.Fprintf(out, "\nNo such team in this dataset: %s\n", team)
		return
	}

	fmt.Fprintf(out, "\nRecommendations for %s:\n", team)
	if ts.DataConfidence == scoring.ConfidenceInsufficient {
		fmt.Fprintf(out, "  - Not enough tickets to score this team; at least %d are needed in the window\n", minTickets)
		return
	}
	for _, advice := range recommend.DefaultTable().Advise(analysisType, ts.Level) {
		fmt.Fprintf(out, "  - %s\n", advice)
	}
}
