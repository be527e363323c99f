package nodes

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

// AskModel submits the conversation and records the reply.
//
// Only the first tool call of the reply is honored. Any further calls are
// dropped here and never reach the tool gateway; there is at most one tool
// round-trip per user turn.
func AskModel(ctx context.Context, in *GraphState, chatModel einomodel.BaseChatModel) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply, err := chatModel.Generate(ctx, in.Messages)
	if err != nil {
		return nil, fmt.Errorf("%w: first pass: %v", contractx.ErrOracleUnavailable, err)
	}
	if reply == nil {
		return nil, fmt.Errorf("%w: first pass returned no message", contractx.ErrOracleUnavailable)
	}

	in.ModelReply = reply
	in.ToolCall = nil
	if len(reply.ToolCalls) == 0 {
		return in, nil
	}

	call := reply.ToolCalls[0]
	in.ToolCall = &call
	if ignored := len(reply.ToolCalls) - 1; ignored > 0 {
		names := make([]string, 0, ignored)
		for _, c := range reply.ToolCalls[1:] {
			names = append(names, c.Function.Name)
		}
		log.Warn().
			Str("honored", call.Function.Name).
			Strs("ignored", names).
			Msg("model requested several tool calls; only the first is executed")
	}
	return in, nil
}

// honoredAssistantMessage is the first reply trimmed to the single tool call
// that will be answered, so every call sent back has a matching response.
func honoredAssistantMessage(in *GraphState) *schema.Message {
	msg := *in.ModelReply
	msg.Role = schema.Assistant
	msg.ToolCalls = []schema.ToolCall{*in.ToolCall}
	return &msg
}
