package race

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gshubitidze/rallysim/log"
	"github.com/gshubitidze/rallysim/pkg/config"
	"github.com/gshubitidze/rallysim/pkg/db/postgres"
	"github.com/gshubitidze/rallysim/pkg/model"
	"github.com/gshubitidze/rallysim/pkg/pubsub"
	"github.com/gshubitidze/rallysim/pkg/race"
	racerepos "github.com/gshubitidze/rallysim/pkg/repository/race"
)

var (
	distanceArg string
	feeArg      string
	raceIDArg   int
)

func NewRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race",
		Short: "run races and inspect their results",
	}
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newResultsCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "runs a rally race over the given distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRace(cmd)
		},
	}
	cmd.Flags().StringVar(&distanceArg, "distance", "100",
		"race distance")
	cmd.Flags().StringVar(&feeArg, "fee", "1000",
		"entry fee deducted once per participating team")
	cmd.Flags().BoolVar(&config.PotPerTeam, "pot-per-team", false,
		"sum the prize pot once per team instead of once per entry")
	cmd.Flags().BoolVar(&config.SplitTiedPrize, "split-tied-prize", false,
		"divide a podium share among tied entries")
	cmd.Flags().BoolVar(&config.LenientBudgetUpdates, "lenient-budget-updates",
		false,
		"log failed budget updates instead of aborting the race (weakens atomicity)")
	cmd.Flags().StringVar(&config.NatsURL, "nats-url", "",
		"if set, publish finished races to this NATS server")
	return cmd
}

func runRace(cmd *cobra.Command) error {
	distance, err := decimal.NewFromString(distanceArg)
	if err != nil {
		return fmt.Errorf("invalid distance %q: %w", distanceArg, err)
	}
	fee, err := decimal.NewFromString(feeArg)
	if err != nil {
		return fmt.Errorf("invalid fee %q: %w", feeArg, err)
	}

	pool := postgres.InitWithURL(config.DB)
	defer pool.Close()

	opts := []race.Option{
		race.WithPotPerTeam(config.PotPerTeam),
		race.WithSplitTiedPrize(config.SplitTiedPrize),
		race.WithLenientBudgetUpdates(config.LenientBudgetUpdates),
	}
	if config.NatsURL != "" {
		publisher, pErr := pubsub.NewNatsPublisher(config.NatsURL)
		if pErr != nil {
			return fmt.Errorf("connect to NATS: %w", pErr)
		}
		defer publisher.Close()
		opts = append(opts, race.WithPublisher(publisher))
	}

	engine := race.NewEngine(pool, opts...)
	raceID, err := engine.RunRace(cmd.Context(), distance, fee)
	if err != nil {
		if errors.Is(err, race.ErrNoEligibleParticipants) {
			fmt.Println("Race aborted:", err)
			return nil
		}
		return err
	}
	fmt.Printf("Race %d completed successfully.\n", raceID)

	results, err := racerepos.LoadResults(cmd.Context(), pool, raceID)
	if err != nil {
		log.Warn("could not load race results", log.ErrorField(err))
		return nil
	}
	return printResults(results)
}

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "shows race results, newest race first",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := postgres.InitWithURL(config.DB)
			defer pool.Close()

			if raceIDArg > 0 {
				results, err := racerepos.LoadResults(cmd.Context(), pool, raceIDArg)
				if err != nil {
					return err
				}
				return printResults(results)
			}
			results, err := racerepos.LoadAllResults(cmd.Context(), pool)
			if err != nil {
				return err
			}
			return printResults(results)
		},
	}
	cmd.Flags().IntVar(&raceIDArg, "race-id", 0,
		"limit output to one race")
	return cmd
}

func printResults(results []*model.RaceResultInfo) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "RACE\tPOS\tTEAM\tCAR\tTIME\tPRIZE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			r.RaceID, r.Position, r.TeamName, r.CarName, r.TimeTaken, r.PrizeMoney)
	}
	return w.Flush()
}
