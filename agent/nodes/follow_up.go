package nodes

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

// FollowUp resubmits the conversation with the tool result and returns the
// model's final text. When that second pass fails and the tool produced
// text of its own, the text is returned as is: a booking may already exist
// and the user must learn about it.
func FollowUp(ctx context.Context, in *GraphState, chatModel einomodel.BaseChatModel) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	fallback, hasFallback := in.ToolResult.Text()

	reply, err := chatModel.Generate(ctx, in.Messages)
	if err != nil {
		if hasFallback {
			log.Warn().Err(err).Str("tool", in.ToolResult.Tool).Msg("second pass failed; returning tool text")
			return GraphOutput{Reply: fallback}, nil
		}
		return GraphOutput{}, fmt.Errorf("%w: second pass: %v", contractx.ErrOracleUnavailable, err)
	}

	text := ""
	if reply != nil {
		text = strings.TrimSpace(reply.Content)
	}
	if text == "" {
		if hasFallback {
			return GraphOutput{Reply: fallback}, nil
		}
		return GraphOutput{}, fmt.Errorf("%w: second pass", contractx.ErrEmptyReply)
	}
	return GraphOutput{Reply: text}, nil
}
