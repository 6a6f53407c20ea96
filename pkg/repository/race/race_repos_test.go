//nolint:funlen,errcheck // ok for this test code
package race

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/testsupport/basedata"
	"github.com/gshubitidze/rallysim/testsupport/testdb"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateEventReturnsIdentity(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	first := &model.RaceEvent{Distance: dec("1000")}
	require.NoError(t, CreateEvent(ctx, pool, first))
	assert.Greater(t, first.ID, 0)
	assert.False(t, first.StartedAt.IsZero())

	// the id comes from the insert itself, not from any ordering
	second := &model.RaceEvent{Distance: dec("42")}
	require.NoError(t, CreateEvent(ctx, pool, second))
	assert.NotEqual(t, first.ID, second.ID)

	events, err := LoadEvents(ctx, pool)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestBulkInsertAndLoadResults(t *testing.T) {
	pool := testdb.InitTestDb()
	teams, cars := basedata.CreateSampleRoster(pool)
	ctx := context.Background()

	event := &model.RaceEvent{Distance: dec("1000")}
	entries := []*model.RaceEntry{
		{
			TeamID: teams[0].ID, CarID: cars[0].ID,
			TimeTaken: dec("18090"), Fee: dec("400"),
		},
		{
			TeamID: teams[1].ID, CarID: cars[1].ID,
			TimeTaken: dec("14440"), Fee: dec("400"),
		},
	}
	results := []*model.RaceResult{
		{
			TeamID: teams[0].ID, CarID: cars[0].ID,
			Position: 2, PrizeMoney: dec("240"),
		},
		{
			TeamID: teams[1].ID, CarID: cars[1].ID,
			Position: 1, PrizeMoney: dec("400"),
		},
	}
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if err := CreateEvent(ctx, tx, event); err != nil {
			return err
		}
		for i := range entries {
			entries[i].RaceID = event.ID
			results[i].RaceID = event.ID
		}
		n, err := BulkInsertEntries(ctx, tx, entries)
		if err != nil {
			return err
		}
		assert.Equal(t, 2, n)
		n, err = BulkInsertResults(ctx, tx, results)
		if err != nil {
			return err
		}
		assert.Equal(t, 2, n)
		return nil
	})
	require.NoError(t, err)

	loaded, err := LoadResults(ctx, pool, event.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "B1", loaded[0].CarName)
	assert.Equal(t, "Team B", loaded[0].TeamName)
	assert.True(t, loaded[0].TimeTaken.Equal(dec("14440")))
	assert.True(t, loaded[0].PrizeMoney.Equal(dec("400")))
	assert.Equal(t, "A1", loaded[1].CarName)

	all, err := LoadAllResults(ctx, pool)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoadResultsUnknownRace(t *testing.T) {
	pool := testdb.InitTestDb()
	loaded, err := LoadResults(context.Background(), pool, -1)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
