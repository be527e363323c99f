// Package cmd wires the rental chat service into a cobra command tree.
package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/Chative-Car-Rental/pkg/config"
	logx "github.com/tanpawarit/Chative-Car-Rental/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "rentchat",
	Short: "Car rental chat assistant",
	Long: `rentchat serves a conversational assistant that searches the car inventory
and books rentals on behalf of signed-in users.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)
		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		logx.Init(*logCfg)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (default ./.env when present)")
}
