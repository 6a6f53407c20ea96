package car

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gshubitidze/rallysim/pkg/config"
	"github.com/gshubitidze/rallysim/pkg/db/postgres"
	"github.com/gshubitidze/rallysim/pkg/service"
)

func NewCarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "car",
		Short: "manage rally cars",
	}
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME SPEED PIT_INTERVAL PIT_DURATION TEAM",
		Short: "adds a new car to an existing team",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vals [3]decimal.Decimal
			for i, arg := range args[1:4] {
				v, err := decimal.NewFromString(arg)
				if err != nil {
					return fmt.Errorf("invalid number %q: %w", arg, err)
				}
				vals[i] = v
			}
			pool := postgres.InitWithURL(config.DB)
			defer pool.Close()

			svc := service.InitCarService(pool)
			entry, err := svc.AddCar(cmd.Context(),
				args[0], vals[0], vals[1], vals[2], args[4])
			if err != nil {
				return err
			}
			fmt.Printf("Car '%s' added with id %d to team '%s'\n",
				entry.Name, entry.ID, args[4])
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "lists all cars with their team",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := postgres.InitWithURL(config.DB)
			defer pool.Close()

			cars, err := service.InitCarService(pool).ListCars(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSPEED\tPIT_INTERVAL\tPIT_DURATION\tTEAM")
			for _, c := range cars {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Speed, c.PitStopInterval,
					c.PitStopDuration, c.TeamName)
			}
			return w.Flush()
		},
	}
}
