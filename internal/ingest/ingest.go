// Package ingest reads support-ticket exports (CSV or XLSX) into the
// ticket shape the scoring engine consumes. Columns are located by header
// name, not position, so reordered exports keep loading; rows missing
// required fields are skipped and counted rather than failing the file.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

var ErrNoHeader = errors.New("export has no header row")

// Result is the outcome of loading one export file.
type Result struct {
	Tickets []scoring.Ticket
	// Skipped counts rows dropped for missing an identifier or creation
	// timestamp. Rows without a team label are kept; the engine routes
	// them to the unassigned bucket.
	Skipped int
}

// columns maps logical fields to header indexes; -1 means absent.
type columns struct {
	id              int
	team            int
	createdAt       int
	respondedAt     int
	responseMinutes int
	message         int
	sentiment       int
	vader           int
	textblob        int
	priority        int
	category        int
	resolved        int
	resolutionMin   int
}

// detectColumns matches headers by keyword, first hit wins. Tolerates the
// column names seen across Twitter-support style exports.
func detectColumns(header []string) columns {
	c := columns{
		id: -1, team: -1, createdAt: -1, respondedAt: -1, responseMinutes: -1,
		message: -1, sentiment: -1, vader: -1, textblob: -1,
		priority: -1, category: -1, resolved: -1, resolutionMin: -1,
	}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case c.responseMinutes == -1 && strings.Contains(l, "response") && (strings.Contains(l, "min") || strings.Contains(l, "time")):
			c.responseMinutes = i
		case c.respondedAt == -1 && (strings.Contains(l, "responded") || strings.Contains(l, "response_at") || strings.Contains(l, "first_response")):
			c.respondedAt = i
		case c.createdAt == -1 && strings.Contains(l, "created"):
			c.createdAt = i
		case c.team == -1 && (strings.Contains(l, "team") || strings.Contains(l, "brand") || strings.Contains(l, "handle") || l == "author_id"):
			c.team = i
		case c.resolutionMin == -1 && strings.Contains(l, "resolution") && (strings.Contains(l, "min") || strings.Contains(l, "time")):
			c.resolutionMin = i
		case c.resolved == -1 && strings.Contains(l, "resolved"):
			c.resolved = i
		case c.vader == -1 && strings.Contains(l, "vader"):
			c.vader = i
		case c.textblob == -1 && strings.Contains(l, "textblob"):
			c.textblob = i
		case c.sentiment == -1 && strings.Contains(l, "sentiment"):
			c.sentiment = i
		case c.message == -1 && (strings.Contains(l, "message") || l == "text" || strings.Contains(l, "tweet_text")):
			c.message = i
		case c.priority == -1 && strings.Contains(l, "priority"):
			c.priority = i
		case c.category == -1 && strings.Contains(l, "category"):
			c.category = i
		case c.id == -1 && strings.Contains(l, "id"):
			c.id = i
		}
	}
	return c
}

// timeLayouts covers RFC 3339 plus the formats seen in raw Twitter exports.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RubyDate, // Tue Oct 31 22:10:47 +0000 2017
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ticketFromRow builds one ticket from a data row. The bool result is
// false when the row lacks an identifier or creation timestamp.
func ticketFromRow(c columns, row []string) (scoring.Ticket, bool) {
	id := strings.TrimSpace(cell(row, c.id))
	created, ok := parseTime(cell(row, c.createdAt))
	if id == "" || !ok {
		return scoring.Ticket{}, false
	}

	t := scoring.Ticket{
		ID:        id,
		Team:      strings.TrimSpace(cell(row, c.team)),
		CreatedAt: created,
		Message:   strings.TrimSpace(cell(row, c.message)),
		Priority:  strings.TrimSpace(cell(row, c.priority)),
		Category:  strings.TrimSpace(cell(row, c.category)),
	}

	if responded, ok := parseTime(cell(row, c.respondedAt)); ok {
		t.RespondedAt = &responded
	}
	if v := parseFloat(cell(row, c.responseMinutes)); v != nil && *v >= 0 {
		t.ResponseMinutes = v
	}
	t.Sentiment = CombinedSentiment(
		parseFloat(cell(row, c.sentiment)),
		parseFloat(cell(row, c.vader)),
		parseFloat(cell(row, c.textblob)),
	)
	if v := parseFloat(cell(row, c.resolutionMin)); v != nil && *v > 0 {
		t.ResolutionMinutes = v
		t.Resolved = true
	}
	if parseBool(cell(row, c.resolved)) {
		t.Resolved = true
	}

	return t, true
}

// fromRows converts header + data rows into a Result. Shared by the CSV
// and XLSX loaders so both honor the same contract.
func fromRows(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	cols := detectColumns(rows[0])
	if cols.id == -1 || cols.createdAt == -1 {
		return nil, fmt.Errorf("%w: no identifier or created-at column detected", ErrNoHeader)
	}

	res := &Result{}
	for _, row := range rows[1:] {
		t, ok := ticketFromRow(cols, row)
		if !ok {
			res.Skipped++
			continue
		}
		res.Tickets = append(res.Tickets, t)
	}
	return res, nil
}
