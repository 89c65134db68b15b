package compstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cardcomps-backend/lib/platforms/pricecharting"
	"cardcomps-backend/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) Store {
	sqlite, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	_, err = sqlite.Exec(Schema)
	require.NoError(t, err)

	return NewStore(sqlite)
}

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:compstore")
	defer cleanup()

	store := newTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	product := "https://www.pricecharting.com/game/pokemon-base-set/charizard"
	day1 := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

	{
		snapshots, err := store.Pull(ctx, "unknown-product")
		require.NoError(t, err)
		require.Len(t, snapshots, 0)
	}
	{
		err := store.Push(ctx, PushRequest{
			Time:    day1,
			Product: product,
			Stats: map[string]pricecharting.GradeStats{
				"PSA 10":   {Count: 3, Median: 200, Mean: 210.5, Min: 180, Max: 250, LatestSale: 250},
				"Ungraded": {Count: 5, Median: 40, Mean: 42, Min: 30, Max: 60, LatestSale: 44},
			},
		})
		require.NoError(t, err)

		snapshots, err := store.Pull(ctx, product)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		require.Equal(t, "PSA 10", snapshots[0].Grade)
		require.Equal(t, 210.5, snapshots[0].Stats.Mean)
	}
	{
		// pushing again on the same day replaces that day's rows
		err := store.Push(ctx, PushRequest{
			Time:    day1.Add(time.Hour),
			Product: product,
			Stats: map[string]pricecharting.GradeStats{
				"PSA 10": {Count: 4, Median: 205, Mean: 215, Min: 180, Max: 260, LatestSale: 260},
			},
		})
		require.NoError(t, err)

		snapshots, err := store.Pull(ctx, product)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		require.Equal(t, 4, snapshots[0].Stats.Count)
	}
	{
		// a later day accumulates instead
		err := store.Push(ctx, PushRequest{
			Time:    day1.AddDate(0, 0, 1),
			Product: product,
			Stats: map[string]pricecharting.GradeStats{
				"PSA 10": {Count: 5, Median: 210, Mean: 220, Min: 180, Max: 270, LatestSale: 270},
			},
		})
		require.NoError(t, err)

		snapshots, err := store.Pull(ctx, product)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		require.True(t, snapshots[0].Time.Before(snapshots[1].Time))
	}
}

func TestStoreSeparatesProducts(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:compstore")
	defer cleanup()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, product := range []string{"product-a", "product-b"} {
		err := store.Push(ctx, PushRequest{
			Time:    now,
			Product: product,
			Stats: map[string]pricecharting.GradeStats{
				"Ungraded": {Count: 1, Median: 10, Mean: 10, Min: 10, Max: 10, LatestSale: 10},
			},
		})
		require.NoError(t, err)
	}

	snapshots, err := store.Pull(ctx, "product-a")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
}
