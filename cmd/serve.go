package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	orchestratorx "github.com/tanpawarit/Chative-Car-Rental/agent/orchestrator"
	promptx "github.com/tanpawarit/Chative-Car-Rental/agent/prompt"
	serverx "github.com/tanpawarit/Chative-Car-Rental/agent/server"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
	toolx "github.com/tanpawarit/Chative-Car-Rental/agent/tool"
	configx "github.com/tanpawarit/Chative-Car-Rental/pkg/config"
	qstashx "github.com/tanpawarit/Chative-Car-Rental/pkg/qstash"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "create missing tables before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	appCfg, err := configx.New[AppConfig]("APP")
	if err != nil {
		return err
	}
	pricing, err := appCfg.Pricing()
	if err != nil {
		return err
	}

	dbCfg, err := loadStoreConfig()
	if err != nil {
		return err
	}
	db, err := storex.Open(*dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if serveMigrate {
		if err := storex.Migrate(ctx, db); err != nil {
			return err
		}
	}
	store := storex.NewBunStore(db)

	opts := []toolx.Option{
		toolx.WithPricing(pricing),
		toolx.WithCurrency(appCfg.Currency),
	}
	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	if publisher != nil {
		opts = append(opts, toolx.WithPublisher(publisher))
	}
	tools := toolx.NewRegistry(store, store, opts...)

	llmCfg, err := loadLLMConfig()
	if err != nil {
		return err
	}
	if err := appCfg.Validate(llmCfg.Timeout); err != nil {
		return err
	}
	openRouterCfg := llmCfg.OpenRouter()
	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		return err
	}

	prompts := promptx.LoadPromptSet()
	orchestrator, err := orchestratorx.New(chatModel, tools, orchestratorx.Config{
		SystemPrompt: prompts.Assistant,
	})
	if err != nil {
		return fmt.Errorf("build orchestrator: %w", err)
	}

	log.Info().
		Str("model", openRouterCfg.Model).
		Str("pricing", appCfg.PricingPolicy).
		Bool("events", publisher != nil).
		Msg("rental chat assistant ready")

	srv := &serverx.Server{
		Addr:            appCfg.Addr,
		ChatPath:        appCfg.ChatPath,
		IdentityHeader:  appCfg.IdentityHeader,
		Chatter:         orchestrator,
		ChatTimeout:     appCfg.ChatTimeout,
		DB:              db,
		WriteTimeout:    appCfg.WriteTimeout,
		ShutdownTimeout: appCfg.ShutdownTimeout,
	}
	return srv.Run(ctx)
}

// newPublisher returns nil when QStash is not configured.
func newPublisher() (*qstashx.Client, error) {
	cfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, err
	}
	client, err := qstashx.NewClient(*cfg)
	if errors.Is(err, qstashx.ErrDisabled) {
		log.Info().Msg("qstash not configured; booking events are not published")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("qstash: %w", err)
	}
	return client, nil
}
