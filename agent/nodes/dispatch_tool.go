package nodes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

// DispatchTool executes the honored tool call and appends the call and its
// result to the conversation. Tool-level failures become part of the result
// so the model can still phrase a reply.
func DispatchTool(ctx context.Context, in *GraphState, tools contractx.ToolGateway) (*GraphState, error) {
	if in == nil || in.ToolCall == nil || in.ModelReply == nil {
		return nil, fmt.Errorf("%w: no tool call to dispatch", contractx.ErrValidation)
	}

	name := strings.TrimSpace(in.ToolCall.Function.Name)
	if strings.TrimSpace(in.ToolCall.ID) == "" {
		in.ToolCall.ID = name
	}
	call := *in.ToolCall

	result, err := executeToolCall(ctx, tools, call, in.Caller)
	if err != nil {
		return nil, err
	}
	in.ToolResult = result

	content, err := result.ResponseContent()
	if err != nil {
		return nil, fmt.Errorf("%w: encode tool result: %v", contractx.ErrValidation, err)
	}

	in.Messages = append(in.Messages,
		honoredAssistantMessage(in),
		schema.ToolMessage(content, call.ID, schema.WithToolName(name)),
	)
	return in, nil
}

func executeToolCall(
	ctx context.Context,
	tools contractx.ToolGateway,
	call schema.ToolCall,
	caller contractx.Identity,
) (contractx.ToolResult, error) {
	name := strings.TrimSpace(call.Function.Name)

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("tool arguments are not a JSON object")
			return contractx.ToolResult{Tool: name, Error: "arguments must be a JSON object"}, nil
		}
	}

	log.Info().
		Str("tool", name).
		Interface("args", args).
		Bool("authenticated", !caller.IsAnonymous()).
		Msg("executing tool")

	result, err := tools.Execute(ctx, contractx.ToolRequest{CallID: call.ID, Tool: name, Args: args}, caller)
	if err != nil {
		if errors.Is(err, contractx.ErrUnknownTool) {
			log.Error().Err(err).Str("tool", name).Msg("model requested an undeclared tool")
			return contractx.ToolResult{Tool: name, Error: fmt.Sprintf("tool %s is not available", name)}, nil
		}
		return contractx.ToolResult{}, err
	}
	if result.Tool == "" {
		result.Tool = name
	}
	return result, nil
}
