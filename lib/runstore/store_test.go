package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/matt-meaningfulgigs/scrape-ai/lib/sqliteutil"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/telemetry"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:runstore")
	defer cleanup()

	db, err := sqliteutil.OpenDB(Schema, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	store := NewStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		history, err := store.History(ctx, "Acme")
		require.NoError(t, err)
		require.Empty(t, history)
	}

	first := time.Date(2024, time.March, 7, 9, 0, 0, 0, time.UTC)
	err = store.Record(ctx, first, []EnterpriseRun{
		{Enterprise: "Acme", RunDate: "2024-03-07", Comments: 4},
		{Enterprise: "Globex", RunDate: "2024-03-07", Failed: true},
	})
	require.NoError(t, err)

	second := first.Add(24 * time.Hour)
	err = store.Record(ctx, second, []EnterpriseRun{
		{Enterprise: "Acme", RunDate: "2024-03-08", Comments: 7},
	})
	require.NoError(t, err)

	{
		history, err := store.History(ctx, "Acme")
		require.NoError(t, err)
		require.Len(t, history, 2)
		// newest first
		require.Equal(t, "2024-03-08", history[0].RunDate)
		require.EqualValues(t, 7, history[0].Comments)
		require.Equal(t, "2024-03-07", history[1].RunDate)
	}
	{
		history, err := store.History(ctx, "")
		require.NoError(t, err)
		require.Len(t, history, 3)
	}
	{
		history, err := store.History(ctx, "Globex")
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.True(t, history[0].Failed)
		require.EqualValues(t, 0, history[0].Comments)
	}
}
