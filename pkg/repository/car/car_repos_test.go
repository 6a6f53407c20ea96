//nolint:funlen,errcheck // ok for this test code
package car

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gshubitidze/rallysim/pkg/model"
	teamrepos "github.com/gshubitidze/rallysim/pkg/repository/team"
	"github.com/gshubitidze/rallysim/testsupport/testdb"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateAndLoad(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	team := &model.Team{Name: "Speed Demons", Budget: dec("1000")}
	require.NoError(t, teamrepos.Create(ctx, pool, team))

	sample := &model.Car{
		Name:            "Nitro Beast",
		Speed:           dec("205"),
		PitStopInterval: dec("46"),
		PitStopDuration: dec("11.5"),
		TeamID:          team.ID,
	}
	require.NoError(t, Create(ctx, pool, sample))
	assert.Greater(t, sample.ID, 0)

	// duplicate car name violates the unique constraint
	dup := &model.Car{
		Name:            "Nitro Beast",
		Speed:           dec("100"),
		PitStopInterval: dec("50"),
		PitStopDuration: dec("10"),
		TeamID:          team.ID,
	}
	assert.Error(t, Create(ctx, pool, dup))

	got, err := LoadByName(ctx, pool, "Nitro Beast")
	require.NoError(t, err)
	assert.Equal(t, sample.ID, got.ID)
	assert.True(t, got.PitStopDuration.Equal(dec("11.5")))

	all, err := LoadAll(ctx, pool)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Speed Demons", all[0].TeamName)
}

func TestLoadEligible(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	rich := &model.Team{Name: "Rich", Budget: dec("1000")}
	poor := &model.Team{Name: "Poor", Budget: dec("100")}
	require.NoError(t, teamrepos.Create(ctx, pool, rich))
	require.NoError(t, teamrepos.Create(ctx, pool, poor))
	for _, c := range []*model.Car{
		{Name: "rich car", Speed: dec("200"), PitStopInterval: dec("300"),
			PitStopDuration: dec("30"), TeamID: rich.ID},
		{Name: "poor car", Speed: dec("250"), PitStopInterval: dec("500"),
			PitStopDuration: dec("20"), TeamID: poor.ID},
	} {
		require.NoError(t, Create(ctx, pool, c))
	}

	tests := []struct {
		name     string
		fee      string
		wantCars []string
	}{
		{name: "all afford it", fee: "100", wantCars: []string{"rich car", "poor car"}},
		{name: "only one team", fee: "500", wantCars: []string{"rich car"}},
		{name: "nobody", fee: "5000", wantCars: []string{}},
		{name: "free entry", fee: "0", wantCars: []string{"rich car", "poor car"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadEligible(ctx, pool, dec(tt.fee))
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.CarName)
			}
			assert.ElementsMatch(t, tt.wantCars, names)
		})
	}
}

func TestLoadEligibleBudgetSnapshot(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	team := &model.Team{Name: "Snapshot", Budget: dec("750")}
	require.NoError(t, teamrepos.Create(ctx, pool, team))
	require.NoError(t, Create(ctx, pool, &model.Car{
		Name: "snap car", Speed: dec("100"), PitStopInterval: dec("100"),
		PitStopDuration: dec("1"), TeamID: team.ID,
	}))

	got, err := LoadEligible(ctx, pool, dec("700"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].TeamBudget.Equal(dec("750")))
}
