package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// MockTicketRepository is a mock implementation of the TicketRepository
// interface for testing the service layer.
type MockTicketRepository struct {
	GetTicketsInPeriodFunc func(ctx context.Context, start, end time.Time) ([]scoring.Ticket, error)
}

// GetTicketsInPeriod implements the TicketRepository interface
func (m *MockTicketRepository) GetTicketsInPeriod(ctx context.Context, start, end time.Time) ([]scoring.Ticket, error) {
	if m.GetTicketsInPeriodFunc != nil {
		return m.GetTicketsInPeriodFunc(ctx, start, end)
	}
	return nil, errors.New("GetTicketsInPeriodFunc not implemented")
}
