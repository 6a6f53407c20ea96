package team

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

func NewTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "manage racing teams",
	}
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	return cmd
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME BUDGET",
		Short: "adds a new team with a starting budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			budget, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid budget %q: %w", args[1], err)
			}
			pool := postgres.InitWithURL(config.DB)
			defer pool.Close()

			svc := service.InitTeamService(pool)
			entry, err := svc.AddTeam(cmd.Context(), args[0], budget)
			if err != nil {
				return err
			}
			fmt.Printf("Team '%s' created with id %d and budget %s\n",
				entry.Name, entry.ID, entry.Budget)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "lists all teams with their current budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool := postgres.InitWithURL(config.DB)
			defer pool.Close()

			teams, err := service.InitTeamService(pool).ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBUDGET")
			for _, t := range teams {
				fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, t.Budget)
			}
			return w.Flush()
		},
	}
}
