package service

import (
	"context"
	"time"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// TicketRepository defines the storage operations the service needs.
type TicketRepository interface {
	GetTicketsInPeriod(ctx context.Context, start, end time.Time) ([]scoring.Ticket, error)
}
