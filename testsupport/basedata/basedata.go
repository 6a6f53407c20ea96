package basedata

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gshubitidze/rallysim/pkg/model"
	carrepos "github.com/gshubitidze/rallysim/pkg/repository/car"
	teamrepos "github.com/gshubitidze/rallysim/pkg/repository/team"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SampleTeams returns the two-team roster used throughout the tests.
// Budgets and car parameters match the worked example of the race engine:
// over 1000 distance units car B1 finishes in 14440s and car A1 in 18090s.
func SampleTeams() []*model.Team {
	return []*model.Team{
		{Name: "Team A", Budget: dec("500")},
		{Name: "Team B", Budget: dec("1000")},
	}
}

func SampleCars() []*model.Car {
	return []*model.Car{
		{
			Name:            "A1",
			Speed:           dec("200"),
			PitStopInterval: dec("300"),
			PitStopDuration: dec("30"),
		},
		{
			Name:            "B1",
			Speed:           dec("250"),
			PitStopInterval: dec("500"),
			PitStopDuration: dec("20"),
		},
	}
}

// CreateSampleRoster inserts the sample teams and assigns one car to each.
func CreateSampleRoster(db *pgxpool.Pool) ([]*model.Team, []*model.Car) {
	ctx := context.Background()
	teams := SampleTeams()
	cars := SampleCars()
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		for i, t := range teams {
			if err := teamrepos.Create(ctx, tx, t); err != nil {
				return err
			}
			cars[i].TeamID = t.ID
			if err := carrepos.Create(ctx, tx, cars[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("createSampleRoster: %v\n", err)
	}
	return teams, cars
}
