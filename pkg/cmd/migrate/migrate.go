package migrate

import (
	"errors"
	"strings"
	"time"

	gomigrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/gshubitidze/rallysim/log"
	"github.com/gshubitidze/rallysim/pkg/config"
	"github.com/gshubitidze/rallysim/pkg/db/migrate"
	"github.com/gshubitidze/rallysim/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration()
		},
	}

	cmd.Flags().StringVarP(&config.MigrationSourceURL,
		"migrationSourceUrl",
		"m",
		"",
		"url to migration files (default: use embedded migrations)")

	return cmd
}

func startMigration() error {
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	if config.MigrationSourceURL == "" {
		log.Info("Running embedded migrations")
		if err := migrate.MigrateDb(config.DB); err != nil {
			return err
		}
		log.Info("Migration done")
		return nil
	}

	log.Info("Using migrations files at",
		log.String("source", config.MigrationSourceURL))
	m, err := gomigrate.New(config.MigrationSourceURL,
		strings.Replace(config.DB, "postgresql://", "pgx5://", 1))
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Up()
	if errors.Is(err, gomigrate.ErrNoChange) {
		log.Info("No migration required")
		return nil
	}
	return err
}
