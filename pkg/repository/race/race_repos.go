package race

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/repository"
)

// CreateEvent persists a new race event and fills in the generated id and
// start timestamp. The id comes straight from the insert; there is no
// "latest row" lookup.
func CreateEvent(
	ctx context.Context,
	conn repository.Querier,
	event *model.RaceEvent,
) error {
	row := conn.QueryRow(ctx, `
	insert into race_event (distance) values ($1)
	returning id, started_at
		`,
		event.Distance,
	)
	if err := row.Scan(&event.ID, &event.StartedAt); err != nil {
		return err
	}
	return nil
}

func LoadEvents(ctx context.Context, conn repository.Querier) (
	[]*model.RaceEvent, error,
) {
	rows, err := conn.Query(ctx,
		"select id, distance, started_at from race_event order by started_at desc")
	if err != nil {
		return nil, err
	}
	ret := make([]*model.RaceEvent, 0)
	for rows.Next() {
		var item model.RaceEvent
		if err := rows.Scan(&item.ID, &item.Distance, &item.StartedAt); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}

// BulkInsertEntries writes all race entries of one race via the Postgres
// copy protocol. Only called inside the race transaction.
func BulkInsertEntries(
	ctx context.Context,
	tx pgx.Tx,
	entries []*model.RaceEntry,
) (int, error) {
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"race_entry"},
		[]string{"race_id", "team_id", "car_id", "time_taken", "fee"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.RaceID, e.TeamID, e.CarID, e.TimeTaken, e.Fee}, nil
		}))
	return int(n), err
}

// BulkInsertResults writes all race results of one race, same mechanics as
// BulkInsertEntries.
func BulkInsertResults(
	ctx context.Context,
	tx pgx.Tx,
	results []*model.RaceResult,
) (int, error) {
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"race_result"},
		[]string{"race_id", "team_id", "car_id", "position", "prize_money"},
		pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
			r := results[i]
			return []any{r.RaceID, r.TeamID, r.CarID, r.Position, r.PrizeMoney}, nil
		}))
	return int(n), err
}

var resultSelector = `
	select r.race_id, t.name, c.name, e.time_taken, r.position, r.prize_money
	from race_result r
	join race_entry e on r.race_id = e.race_id and r.car_id = e.car_id
	join team t on r.team_id = t.id
	join car c on r.car_id = c.id`

// LoadResults returns the results of one race, fastest first.
func LoadResults(ctx context.Context, conn repository.Querier, raceID int) (
	[]*model.RaceResultInfo, error,
) {
	rows, err := conn.Query(ctx,
		resultSelector+" where r.race_id=$1 order by r.position asc", raceID)
	if err != nil {
		return nil, err
	}
	return readResults(rows)
}

// LoadAllResults returns the results of all races, newest race first.
func LoadAllResults(ctx context.Context, conn repository.Querier) (
	[]*model.RaceResultInfo, error,
) {
	rows, err := conn.Query(ctx,
		resultSelector+" order by r.race_id desc, r.position asc")
	if err != nil {
		return nil, err
	}
	return readResults(rows)
}

func readResults(rows pgx.Rows) ([]*model.RaceResultInfo, error) {
	ret := make([]*model.RaceResultInfo, 0)
	for rows.Next() {
		var item model.RaceResultInfo
		if err := rows.Scan(
			&item.RaceID, &item.TeamName, &item.CarName, &item.TimeTaken,
			&item.Position, &item.PrizeMoney,
		); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, nil
}
