package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/repository/models"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// TicketRepository stores raw ticket records in SQLite. Scores are never
// persisted; every report is recomputed from these rows.
type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// EnsureSchema creates the tickets table and its indexes if absent.
func (r *TicketRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			team TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			responded_at TEXT,
			response_minutes REAL,
			message TEXT,
			sentiment REAL,
			priority TEXT,
			category TEXT,
			resolved INTEGER NOT NULL DEFAULT 0,
			resolution_minutes REAL
		);
		CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets (created_at);
		CREATE INDEX IF NOT EXISTS idx_tickets_team ON tickets (team);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure tickets schema: %w", err)
	}
	return nil
}

// InsertTickets upserts a batch in one transaction and returns the number
// of rows written. Re-importing the same export is idempotent.
func (r *TicketRepository) InsertTickets(ctx context.Context, tickets []scoring.Ticket) (int, error) {
	if len(tickets) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert tickets: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO tickets
			(id, team, created_at, responded_at, response_minutes, message,
			 sentiment, priority, category, resolved, resolution_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team = excluded.team,
			created_at = excluded.created_at,
			responded_at = excluded.responded_at,
			response_minutes = excluded.response_minutes,
			message = excluded.message,
			sentiment = excluded.sentiment,
			priority = excluded.priority,
			category = excluded.category,
			resolved = excluded.resolved,
			resolution_minutes = excluded.resolution_minutes
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare insert tickets: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, t := range tickets {
		var respondedAt any
		if t.RespondedAt != nil {
			respondedAt = t.RespondedAt.UTC().Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Team, t.CreatedAt.UTC().Format(time.RFC3339), respondedAt,
			floatOrNil(t.ResponseMinutes), nullIfEmpty(t.Message),
			floatOrNil(t.Sentiment), nullIfEmpty(t.Priority), nullIfEmpty(t.Category),
			t.Resolved, floatOrNil(t.ResolutionMinutes),
		); err != nil {
			return 0, fmt.Errorf("insert ticket %s: %w", t.ID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert tickets: %w", err)
	}
	return count, nil
}

// GetTicketsInPeriod returns tickets created inside [start, end], ordered
// by creation time so repeated reads feed the engine identically.
func (r *TicketRepository) GetTicketsInPeriod(ctx context.Context, start, end time.Time) ([]scoring.Ticket, error) {
	const query = `
		SELECT id, team, created_at, responded_at, response_minutes, message,
		       sentiment, priority, category, resolved, resolution_minutes
		FROM tickets
		WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query GetTicketsInPeriod: %w", err)
	}
	defer rows.Close()

	var out []scoring.Ticket
	for rows.Next() {
		var row models.TicketRow
		if err := rows.Scan(
			&row.ID, &row.Team, &row.CreatedAt, &row.RespondedAt, &row.ResponseMinutes,
			&row.Message, &row.Sentiment, &row.Priority, &row.Category,
			&row.Resolved, &row.ResolutionMinutes,
		); err != nil {
			return nil, fmt.Errorf("scan GetTicketsInPeriod row: %w", err)
		}
		t, err := toTicket(row)
		if err != nil {
			return nil, fmt.Errorf("decode ticket %s: %w", row.ID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetTicketsInPeriod: %w", err)
	}
	return out, nil
}

// CountTickets returns the total number of stored tickets.
func (r *TicketRepository) CountTickets(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("query CountTickets: %w", err)
	}
	return count, nil
}

func toTicket(row models.TicketRow) (scoring.Ticket, error) {
	created, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return scoring.Ticket{}, fmt.Errorf("parse created_at: %w", err)
	}

	t := scoring.Ticket{
		ID:        row.ID,
		Team:      row.Team,
		CreatedAt: created,
		Resolved:  row.Resolved,
	}
	if row.RespondedAt.Valid {
		responded, err := time.Parse(time.RFC3339, row.RespondedAt.String)
		if err != nil {
			return scoring.Ticket{}, fmt.Errorf("parse responded_at: %w", err)
		}
		t.RespondedAt = &responded
	}
	if row.ResponseMinutes.Valid {
		v := row.ResponseMinutes.Float64
		t.ResponseMinutes = &v
	}
	if row.Message.Valid {
		t.Message = row.Message.String
	}
	if row.Sentiment.Valid {
		v := row.Sentiment.Float64
		t.Sentiment = &v
	}
	if row.Priority.Valid {
		t.Priority = row.Priority.String
	}
	if row.Category.Valid {
		t.Category = row.Category.String
	}
	if row.ResolutionMinutes.Valid {
		v := row.ResolutionMinutes.Float64
		t.ResolutionMinutes = &v
	}
	return t, nil
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
