package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/deppfellow/vehicle-information/internal/config"
	"github.com/deppfellow/vehicle-information/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the vehicle tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if cfg.Database.Driver != config.DriverPostgres {
			return errors.New("migrate needs VEHICLE_DATABASE__DRIVER=postgres")
		}

		return database.Migrate(cmd.Context(), &log, cfg)
	},
}
