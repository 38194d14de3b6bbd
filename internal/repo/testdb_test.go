package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/testutil"
)

// newTestTx opens a transaction against the test database. All repos built on
// it share the same uncommitted state, and the rollback on cleanup discards
// everything — no cleanup SQL needed.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// travelFixture returns a domain.Travel with sensible defaults.
// Callers can override individual fields after calling this function.
func travelFixture() domain.Travel {
	return domain.Travel{
		Title:       "Japan Trip",
		Description: "Two weeks in Japan",
		StartDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC),
		Destination: "Tokyo, Japan",
	}
}

func eventTypeFixture() domain.EventType {
	return domain.EventType{
		Name:     "Hotel",
		Category: "accommodation",
		Color:    "#FF5733",
		Icon:     "hotel",
	}
}

func eventFixture(travelID, eventTypeID int64) domain.Event {
	return domain.Event{
		TravelID:    travelID,
		Title:       "Check in at hotel",
		Description: "Late arrival",
		EventTypeID: eventTypeID,
		StartAt:     time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC),
		Location:    "Shinjuku",
	}
}

func defaultPage() domain.PageParams {
	return domain.NewPageParams(nil, nil)
}
