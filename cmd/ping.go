package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	openrouterx "github.com/tanpawarit/Chative-Car-Rental/pkg/openrouter"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured model is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		llmCfg, err := loadLLMConfig()
		if err != nil {
			return err
		}
		cfg := llmCfg.OpenRouter()

		client := openrouterx.NewClient(cfg)
		if err := openrouterx.CheckModel(cmd.Context(), client, cfg.Model); err != nil {
			return err
		}
		log.Info().Str("model", cfg.Model).Str("base_url", cfg.BaseURL).Msg("model reachable")
		fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", cfg.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
