package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type LLMBuilder interface {
	New(ctx context.Context) (model.ToolCallingChatModel, error)
}

var _ LLMBuilder = (*Config)(nil)

// ReasoningBlacklist lists models whose reasoning output is switched off.
var ReasoningBlacklist = map[string]bool{
	"x-ai/grok-4.1-fast": true,
}

// Config is the resolved client configuration. Environment loading lives in
// agent/llm.Config, which converts into this type.
type Config struct {
	BaseURL            string
	APIKey             string
	Model              string
	MaxCompletionToken *int
	Temperature        float32
	Timeout            time.Duration
	SiteURL            string
	SiteName           string
}

func (c *Config) New(ctx context.Context) (model.ToolCallingChatModel, error) {
	conf, err := c.chatModelConfig()
	if err != nil {
		return nil, err
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("openrouter: create chat model %s: %w", conf.Model, err)
	}
	return m, nil
}

func (c *Config) chatModelConfig() (*openaimodel.ChatModelConfig, error) {
	name := strings.TrimSpace(c.Model)
	if name == "" {
		return nil, errors.New("openrouter: model is required")
	}

	temperature := c.Temperature
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       name,
		MaxTokens:   c.MaxCompletionToken,
		Temperature: &temperature,
		Timeout:     c.Timeout,
	}
	if ReasoningBlacklist[name] {
		conf.ExtraFields = map[string]any{
			"reasoning": map[string]any{"exclude": true, "effort": "none"},
		}
	}
	return conf, nil
}

// NewClient returns an openai-go client pointed at OpenRouter, or nil when no
// API key is set.
func NewClient(cfg Config) *openaisdk.Client {
	opts := cfg.clientOptions()
	if opts == nil {
		return nil
	}
	client := openaisdk.NewClient(opts...)
	return &client
}

func (c Config) clientOptions() []option.RequestOption {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return nil
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if c.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(c.Timeout))
	}

	headers := map[string]string{
		"HTTP-Referer": strings.TrimSpace(c.SiteURL),
		"X-Title":      strings.TrimSpace(c.SiteName),
	}
	for name, value := range headers {
		if value != "" {
			opts = append(opts, option.WithHeader(name, value))
		}
	}
	return opts
}

// CheckModel reports whether the configured model is served by the endpoint.
func CheckModel(ctx context.Context, client *openaisdk.Client, modelName string) error {
	if client == nil {
		return errors.New("openrouter: client is not configured")
	}
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return errors.New("openrouter: model is required")
	}

	m, err := client.Models.Get(ctx, modelName)
	if err != nil {
		return fmt.Errorf("openrouter: get model %s: %w", modelName, err)
	}
	if m == nil || m.ID == "" {
		return fmt.Errorf("openrouter: model %s not found", modelName)
	}
	return nil
}
