package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the cars and bookings tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbCfg, err := loadStoreConfig()
		if err != nil {
			return err
		}
		db, err := storex.Open(*dbCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := storex.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		log.Info().Str("driver", dbCfg.Driver).Msg("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
