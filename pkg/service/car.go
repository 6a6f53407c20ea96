package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/repository/car"
	"github.com/gshubitidze/rallysim/pkg/repository/team"
)

type CarService struct {
	pool *pgxpool.Pool
}

func InitCarService(pool *pgxpool.Pool) *CarService {
	return &CarService{pool: pool}
}

// AddCar registers a car for the team with the given name.
func (s *CarService) AddCar(
	ctx context.Context,
	name string,
	speed, pitInterval, pitDuration decimal.Decimal,
	teamName string,
) (*model.Car, error) {
	entry := &model.Car{
		Name:            name,
		Speed:           speed,
		PitStopInterval: pitInterval,
		PitStopDuration: pitDuration,
	}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		owner, err := team.LoadByName(ctx, tx, teamName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("no team found with name '%s'", teamName)
			}
			return err
		}
		if _, err = car.LoadByName(ctx, tx, name); err == nil {
			return &DuplicateNameError{Kind: "car", Name: name}
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		entry.TeamID = owner.ID
		return car.Create(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CarService) ListCars(ctx context.Context) ([]*model.CarInfo, error) {
	return car.LoadAll(ctx, s.pool)
}
