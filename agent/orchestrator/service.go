package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
	nodex "github.com/tanpawarit/Chative-Car-Rental/agent/nodes"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

type Config struct {
	SystemPrompt string
}

// Orchestrator runs one chat turn: a first model pass, at most one tool
// execution, and a second pass that phrases the tool result.
type Orchestrator struct {
	chatModel einomodel.ToolCallingChatModel
	tools     contractx.ToolGateway

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	systemPrompt string
}

var _ contractx.Chatter = (*Orchestrator)(nil)

func New(
	chatModel einomodel.ToolCallingChatModel,
	tools contractx.ToolGateway,
	cfg Config,
) (*Orchestrator, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}

	bound, err := chatModel.WithTools(tools.Infos())
	if err != nil {
		return nil, fmt.Errorf("bind tools: %w", err)
	}

	o := &Orchestrator{
		chatModel:    bound,
		tools:        tools,
		systemPrompt: cfg.SystemPrompt,
	}

	graphRunner, err := o.compileHandleChatGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

func (o *Orchestrator) HandleChat(ctx context.Context, req contractx.ChatRequest) (contractx.ChatResponse, error) {
	start := time.Now()

	out, err := o.graphRunner.Invoke(ctx, req)
	if err != nil {
		log.Error().
			Err(err).
			Int("history", len(req.History)).
			Dur("elapsed", time.Since(start)).
			Msg("chat turn failed")
		return contractx.ChatResponse{}, err
	}

	log.Debug().
		Int("history", len(req.History)).
		Dur("elapsed", time.Since(start)).
		Msg("chat turn completed")
	return out, nil
}
