package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/repository"
	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

func setupRepo(t *testing.T) *repository.TicketRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewTicketRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func fptr(v float64) *float64 { return &v }

func seedTickets(base time.Time) []scoring.Ticket {
	responded := base.Add(25 * time.Minute)
	return []scoring.Ticket{
		{
			ID:          "T-1",
			Team:        "Billing",
			CreatedAt:   base,
			RespondedAt: &responded,
			Message:     "where is my refund?",
			Sentiment:   fptr(-0.3),
			Priority:    "high",
		},
		{
			ID:              "T-2",
			Team:            "Billing",
			CreatedAt:       base.Add(time.Hour),
			ResponseMinutes: fptr(12),
			Sentiment:       fptr(0.6),
		},
		{
			ID:                "T-3",
			Team:              "Shipping",
			CreatedAt:         base.Add(26 * time.Hour),
			ResponseMinutes:   fptr(90),
			Resolved:          true,
			ResolutionMinutes: fptr(240),
		},
	}
}

func TestTicketRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	n, err := repo.InsertTickets(ctx, seedTickets(base))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	t.Run("CountTickets", func(t *testing.T) {
		count, err := repo.CountTickets(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), count)
	})

	t.Run("GetTicketsInPeriod respects the window", func(t *testing.T) {
		tickets, err := repo.GetTicketsInPeriod(ctx, base, base.Add(2*time.Hour))
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		require.Equal(t, "T-1", tickets[0].ID)
		require.Equal(t, "T-2", tickets[1].ID)
	})

	t.Run("round trip preserves optional fields", func(t *testing.T) {
		tickets, err := repo.GetTicketsInPeriod(ctx, base, base.Add(48*time.Hour))
		require.NoError(t, err)
		require.Len(t, tickets, 3)

		first := tickets[0]
		require.NotNil(t, first.RespondedAt)
		require.Equal(t, base.Add(25*time.Minute), first.RespondedAt.UTC())
		require.NotNil(t, first.Sentiment)
		require.InDelta(t, -0.3, *first.Sentiment, 1e-9)
		require.Equal(t, "high", first.Priority)
		require.Nil(t, first.ResponseMinutes)

		third := tickets[2]
		require.True(t, third.Resolved)
		require.NotNil(t, third.ResolutionMinutes)
		require.InDelta(t, 240.0, *third.ResolutionMinutes, 1e-9)
		require.Nil(t, third.RespondedAt)
	})

	t.Run("re-import upserts instead of duplicating", func(t *testing.T) {
		updated := seedTickets(base)
		updated[0].Team = "Payments"

		n, err := repo.InsertTickets(ctx, updated)
		require.NoError(t, err)
		require.Equal(t, 3, n)

		count, err := repo.CountTickets(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(3), count)

		tickets, err := repo.GetTicketsInPeriod(ctx, base, base.Add(time.Minute))
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		require.Equal(t, "Payments", tickets[0].Team)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		n, err := repo.InsertTickets(ctx, nil)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}
