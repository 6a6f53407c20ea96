package team

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/repository"
)

var selector = `select id, name, budget from team`

func Create(ctx context.Context, conn repository.Querier, team *model.Team) error {
	row := conn.QueryRow(ctx, `
	insert into team (name, budget) values ($1,$2)
	returning id
		`,
		team.Name, team.Budget,
	)
	if err := row.Scan(&team.ID); err != nil {
		return err
	}
	return nil
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Team, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where id=$1", selector), id)
	return readData(row)
}

func LoadByName(ctx context.Context, conn repository.Querier, name string) (
	*model.Team, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where name=$1", selector), name)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) (
	[]*model.Team, error,
) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by id", selector))
	if err != nil {
		return nil, err
	}
	ret := make([]*model.Team, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

// AdjustBudget applies a signed delta to the team budget. The caller decides
// sign and amount (negative for fee deduction, positive for prize credit).
func AdjustBudget(
	ctx context.Context,
	conn repository.Querier,
	teamID int,
	delta decimal.Decimal,
) error {
	cmdTag, err := conn.Exec(ctx,
		"update team set budget = budget + $1 where id=$2", delta, teamID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("no team with id %d", teamID)
	}
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from team where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Team, error) {
	var item model.Team
	if err := row.Scan(&item.ID, &item.Name, &item.Budget); err != nil {
		return nil, err
	}
	return &item, nil
}
