package cmd

import (
	"fmt"
	"time"

	llmx "github.com/tanpawarit/Chative-Car-Rental/agent/llm"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
	toolx "github.com/tanpawarit/Chative-Car-Rental/agent/tool"
	configx "github.com/tanpawarit/Chative-Car-Rental/pkg/config"
)

type AppConfig struct {
	Addr            string        `envconfig:"ADDR" default:":5000"`
	ChatPath        string        `envconfig:"CHAT_PATH" split_words:"true" default:"/api/chat"`
	IdentityHeader  string        `envconfig:"IDENTITY_HEADER" split_words:"true" default:"X-User-ID"`
	PricingPolicy   string        `envconfig:"PRICING_POLICY" split_words:"true" default:"flat"`
	Currency        string        `envconfig:"CURRENCY" default:"₹"`
	ChatTimeout     time.Duration `envconfig:"CHAT_TIMEOUT" split_words:"true" default:"75s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" split_words:"true" default:"90s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"15s"`
}

// Pricing resolves the configured pricing policy.
func (c AppConfig) Pricing() (toolx.PricingPolicy, error) {
	policy, err := toolx.PricingByName(c.PricingPolicy)
	if err != nil {
		return nil, fmt.Errorf("APP_PRICING_POLICY: %w", err)
	}
	return policy, nil
}

// Validate checks that a chat turn, which may call the model twice, fits
// inside the HTTP write deadline.
func (c AppConfig) Validate(modelTimeout time.Duration) error {
	if c.WriteTimeout > 0 && c.ChatTimeout >= c.WriteTimeout {
		return fmt.Errorf("APP_CHAT_TIMEOUT (%s) must be below APP_WRITE_TIMEOUT (%s)", c.ChatTimeout, c.WriteTimeout)
	}
	if c.ChatTimeout > 0 && modelTimeout > 0 && 2*modelTimeout >= c.ChatTimeout {
		return fmt.Errorf("APP_CHAT_TIMEOUT (%s) must exceed twice OPENROUTER_TIMEOUT (%s)", c.ChatTimeout, modelTimeout)
	}
	return nil
}

func loadStoreConfig() (*storex.Config, error) {
	return configx.New[storex.Config]("DB")
}

func loadLLMConfig() (*llmx.Config, error) {
	cfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
