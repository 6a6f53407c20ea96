//nolint:funlen // ok for this test code
package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gshubitidze/rallysim/testsupport/testdb"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddTeam(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	svc := InitTeamService(pool)

	created, err := svc.AddTeam(ctx, "Turbo Titans", dec("45000"))
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)

	// second team with the same name is rejected as a business error
	_, err = svc.AddTeam(ctx, "Turbo Titans", dec("100"))
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "team", dup.Kind)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestAddCar(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	_, err := InitTeamService(pool).AddTeam(ctx, "Turbo Titans", dec("45000"))
	require.NoError(t, err)

	svc := InitCarService(pool)
	created, err := svc.AddCar(ctx,
		"Nitro Beast", dec("205"), dec("46"), dec("11.5"), "Turbo Titans")
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)

	t.Run("unknown team", func(t *testing.T) {
		_, err := svc.AddCar(ctx,
			"Wanderer", dec("100"), dec("50"), dec("10"), "No Such Team")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No Such Team")
	})

	t.Run("duplicate car name", func(t *testing.T) {
		_, err := svc.AddCar(ctx,
			"Nitro Beast", dec("100"), dec("50"), dec("10"), "Turbo Titans")
		var dup *DuplicateNameError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "car", dup.Kind)
	})

	cars, err := svc.ListCars(ctx)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "Turbo Titans", cars[0].TeamName)
}
