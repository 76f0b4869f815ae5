package models

import "database/sql"

// TicketRow is the tickets table row shape. Nullable columns use sql.Null
// types here; the repository converts to the engine's pointer-based ticket.
type TicketRow struct {
	ID                string
	Team              string
	CreatedAt         string
	RespondedAt       sql.NullString
	ResponseMinutes   sql.NullFloat64
	Message           sql.NullString
	Sentiment         sql.NullFloat64
	Priority          sql.NullString
	Category          sql.NullString
	Resolved          bool
	ResolutionMinutes sql.NullFloat64
}
