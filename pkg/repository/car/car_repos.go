package car

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/repository"
)

var selector = `select id, name, speed, pit_stop_interval, pit_stop_duration, team_id
	from car`

func Create(ctx context.Context, conn repository.Querier, car *model.Car) error {
	row := conn.QueryRow(ctx, `
	insert into car (name, speed, pit_stop_interval, pit_stop_duration, team_id)
	values ($1,$2,$3,$4,$5)
	returning id
		`,
		car.Name, car.Speed, car.PitStopInterval, car.PitStopDuration, car.TeamID,
	)
	if err := row.Scan(&car.ID); err != nil {
		return err
	}
	return nil
}

func LoadByName(ctx context.Context, conn repository.Querier, name string) (
	*model.Car, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where name=$1", selector), name)
	return readData(row)
}

// LoadAll returns all cars together with their team name.
func LoadAll(ctx context.Context, conn repository.Querier) (
	[]*model.CarInfo, error,
) {
	rows, err := conn.Query(ctx, `
	select c.id, c.name, c.speed, c.pit_stop_interval, c.pit_stop_duration,
	       c.team_id, t.name
	from car c join team t on c.team_id = t.id
	order by c.id`)
	if err != nil {
		return nil, err
	}
	ret := make([]*model.CarInfo, 0)
	for rows.Next() {
		var item model.CarInfo
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Speed, &item.PitStopInterval,
			&item.PitStopDuration, &item.TeamID, &item.TeamName,
		); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

// LoadEligible returns every car whose team budget covers the fee.
// The matching team rows are locked until the surrounding transaction ends,
// so a concurrent race cannot admit a team on the same pre-race budget.
func LoadEligible(
	ctx context.Context,
	conn repository.Querier,
	fee decimal.Decimal,
) ([]*model.EligibleCar, error) {
	rows, err := conn.Query(ctx, `
	select c.id, c.name, c.speed, c.pit_stop_interval, c.pit_stop_duration,
	       c.team_id, t.name, t.budget
	from car c join team t on c.team_id = t.id
	where t.budget >= $1
	order by c.id
	for update of t`, fee)
	if err != nil {
		return nil, err
	}
	ret := make([]*model.EligibleCar, 0)
	for rows.Next() {
		var item model.EligibleCar
		if err := rows.Scan(
			&item.CarID, &item.CarName, &item.Speed, &item.PitStopInterval,
			&item.PitStopDuration, &item.TeamID, &item.TeamName, &item.TeamBudget,
		); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

func readData(row pgx.Row) (*model.Car, error) {
	var item model.Car
	if err := row.Scan(
		&item.ID, &item.Name, &item.Speed, &item.PitStopInterval,
		&item.PitStopDuration, &item.TeamID,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
