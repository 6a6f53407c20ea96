package race

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gshubitidze/rallysim/log"
	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/repository"
	carrepos "github.com/gshubitidze/rallysim/pkg/repository/car"
	racerepos "github.com/gshubitidze/rallysim/pkg/repository/race"
	teamrepos "github.com/gshubitidze/rallysim/pkg/repository/team"
)

var (
	// ErrNoEligibleParticipants is returned when no team budget covers the
	// entry fee. It is a business outcome, not a storage failure; nothing
	// is persisted in that case.
	ErrNoEligibleParticipants = errors.New("no teams with enough budget to join this race")
	ErrInvalidDistance        = errors.New("race distance must be positive")
	ErrInvalidFee             = errors.New("entry fee must not be negative")
)

// Publisher is notified after a race has been committed.
type Publisher interface {
	PublishRaceFinished(ctx context.Context, msg *FinishedMessage) error
}

type FinishedMessage struct {
	RaceID   int              `json:"raceId"`
	Distance decimal.Decimal  `json:"distance"`
	Results  []FinishedResult `json:"results"`
}

type FinishedResult struct {
	TeamName   string          `json:"teamName"`
	CarName    string          `json:"carName"`
	Position   int             `json:"position"`
	TimeTaken  decimal.Decimal `json:"timeTaken"`
	PrizeMoney decimal.Decimal `json:"prizeMoney"`
}

// Engine runs rally races. Each RunRace call is one database transaction;
// there is no state kept between invocations.
type Engine struct {
	pool   *pgxpool.Pool
	logger *zap.Logger

	potPerTeam           bool
	splitTiedPrize       bool
	lenientBudgetUpdates bool
	publisher            Publisher

	// swapped in tests to inject budget-adjustment failures
	adjustBudget func(ctx context.Context, conn repository.Querier,
		teamID int, delta decimal.Decimal) error
}

type Option func(*Engine)

// WithPotPerTeam sums the prize pot once per participating team. The default
// follows the historical accounting which adds the fee once per entry even
// though a multi-car team pays it only once.
func WithPotPerTeam(b bool) Option {
	return func(e *Engine) { e.potPerTeam = b }
}

// WithSplitTiedPrize divides a podium share among entries tied on that
// position instead of paying each of them the full share.
func WithSplitTiedPrize(b bool) Option {
	return func(e *Engine) { e.splitTiedPrize = b }
}

// WithLenientBudgetUpdates restores the legacy policy of logging a failed
// fee/prize adjustment and carrying on. This weakens the all-or-nothing
// guarantee of the race transaction; only failures that do not abort the
// transaction on the server (e.g. a vanished team row) can be skipped.
func WithLenientBudgetUpdates(b bool) Option {
	return func(e *Engine) { e.lenientBudgetUpdates = b }
}

func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(pool *pgxpool.Pool, opts ...Option) *Engine {
	ret := &Engine{
		pool:         pool,
		logger:       log.Named("race"),
		adjustBudget: teamrepos.AdjustBudget,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// RunRace performs one rally race as a single transaction:
// create the event, select cars of teams that can afford the fee, deduct the
// fee once per team, compute finishing times, rank with min semantics,
// distribute the prize pot (50/30/20) and credit the winners. On any error
// every write of this invocation is rolled back.
//
// The eligibility select locks the team rows, so concurrent races serialize
// on the teams they share and never deduct a fee from a stale budget.
func (e *Engine) RunRace(
	ctx context.Context,
	distance, fee decimal.Decimal,
) (int, error) {
	if distance.Sign() <= 0 {
		return 0, ErrInvalidDistance
	}
	if fee.Sign() < 0 {
		return 0, ErrInvalidFee
	}

	var raceID int
	var finished *FinishedMessage
	err := pgx.BeginFunc(ctx, e.pool, func(tx pgx.Tx) error {
		event := &model.RaceEvent{Distance: distance}
		if err := racerepos.CreateEvent(ctx, tx, event); err != nil {
			return fmt.Errorf("create race event: %w", err)
		}

		eligible, err := carrepos.LoadEligible(ctx, tx, fee)
		if err != nil {
			return fmt.Errorf("load eligible cars: %w", err)
		}
		if len(eligible) == 0 {
			return ErrNoEligibleParticipants
		}

		teamIDs := lo.Uniq(lo.Map(eligible,
			func(c *model.EligibleCar, _ int) int { return c.TeamID }))
		for _, teamID := range teamIDs {
			if err := e.adjustBudget(ctx, tx, teamID, fee.Neg()); err != nil {
				if !e.lenientBudgetUpdates {
					return fmt.Errorf("deduct fee for team %d: %w", teamID, err)
				}
				e.logger.Warn("fee deduction failed, continuing",
					zap.Int("teamId", teamID), zap.Error(err))
			}
		}

		entries := make([]*model.RaceEntry, len(eligible))
		times := make([]decimal.Decimal, len(eligible))
		for i, c := range eligible {
			times[i] = RaceTime(distance, c.Speed, c.PitStopInterval, c.PitStopDuration)
			entries[i] = &model.RaceEntry{
				RaceID:    event.ID,
				TeamID:    c.TeamID,
				CarID:     c.CarID,
				TimeTaken: times[i],
				Fee:       fee,
			}
		}
		if _, err := racerepos.BulkInsertEntries(ctx, tx, entries); err != nil {
			return fmt.Errorf("insert race entries: %w", err)
		}

		positions := assignPositions(times)
		tieCount := lo.CountValues(positions)

		pot := fee.Mul(decimal.NewFromInt(int64(len(entries))))
		if e.potPerTeam {
			pot = fee.Mul(decimal.NewFromInt(int64(len(teamIDs))))
		}

		results := make([]*model.RaceResult, len(entries))
		for i, entry := range entries {
			results[i] = &model.RaceResult{
				RaceID:   event.ID,
				TeamID:   entry.TeamID,
				CarID:    entry.CarID,
				Position: positions[i],
				PrizeMoney: prizeFor(
					pot, positions[i], tieCount[positions[i]], e.splitTiedPrize),
			}
		}
		if _, err := racerepos.BulkInsertResults(ctx, tx, results); err != nil {
			return fmt.Errorf("insert race results: %w", err)
		}

		for _, res := range results {
			if res.PrizeMoney.Sign() <= 0 {
				continue
			}
			if err := e.adjustBudget(ctx, tx, res.TeamID, res.PrizeMoney); err != nil {
				if !e.lenientBudgetUpdates {
					return fmt.Errorf("credit prize for team %d: %w", res.TeamID, err)
				}
				e.logger.Warn("prize credit failed, continuing",
					zap.Int("teamId", res.TeamID), zap.Error(err))
			}
		}

		raceID = event.ID
		finished = buildFinishedMessage(event, eligible, entries, results)
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.logger.Info("race completed",
		zap.Int("raceId", raceID),
		zap.Int("entries", len(finished.Results)))
	if e.publisher != nil {
		// the race is committed at this point; a failed notification is
		// not a race failure
		if pubErr := e.publisher.PublishRaceFinished(ctx, finished); pubErr != nil {
			e.logger.Warn("race finished notification failed",
				zap.Int("raceId", raceID), zap.Error(pubErr))
		}
	}
	return raceID, nil
}

func buildFinishedMessage(
	event *model.RaceEvent,
	eligible []*model.EligibleCar,
	entries []*model.RaceEntry,
	results []*model.RaceResult,
) *FinishedMessage {
	msg := &FinishedMessage{
		RaceID:   event.ID,
		Distance: event.Distance,
		Results:  make([]FinishedResult, len(results)),
	}
	for i := range results {
		msg.Results[i] = FinishedResult{
			TeamName:   eligible[i].TeamName,
			CarName:    eligible[i].CarName,
			Position:   results[i].Position,
			TimeTaken:  entries[i].TimeTaken,
			PrizeMoney: results[i].PrizeMoney,
		}
	}
	slices.SortStableFunc(msg.Results, func(a, b FinishedResult) int {
		return a.Position - b.Position
	})
	return msg
}
