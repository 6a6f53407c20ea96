package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/repository/team"
)

// DuplicateNameError signals a non-fatal business outcome: the requested
// team or car name is already taken.
type DuplicateNameError struct {
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s with name '%s' already exists", e.Kind, e.Name)
}

type TeamService struct {
	pool *pgxpool.Pool
}

func InitTeamService(pool *pgxpool.Pool) *TeamService {
	return &TeamService{pool: pool}
}

func (s *TeamService) AddTeam(
	ctx context.Context,
	name string,
	budget decimal.Decimal,
) (*model.Team, error) {
	entry := &model.Team{Name: name, Budget: budget}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := team.LoadByName(ctx, tx, name)
		if err == nil {
			return &DuplicateNameError{Kind: "team", Name: name}
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return team.Create(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return team.LoadAll(ctx, s.pool)
}
