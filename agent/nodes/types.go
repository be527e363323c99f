package nodes

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

var ErrInvalidMessage = fmt.Errorf("%w: message is empty", contractx.ErrValidation)

type GraphInput = contractx.ChatRequest

type GraphOutput = contractx.ChatResponse

// GraphState is threaded through every node of one chat turn.
type GraphState struct {
	Caller   contractx.Identity
	Messages []*schema.Message

	// ModelReply is the first oracle answer.
	ModelReply *schema.Message
	// ToolCall is the honored tool call, nil when the model answered directly.
	ToolCall   *schema.ToolCall
	ToolResult contractx.ToolResult
}

func (s *GraphState) HasToolCall() bool {
	return s != nil && s.ToolCall != nil
}

// ValidateRequest builds the initial message list:
// system prompt, normalized history, then the new user message.
func ValidateRequest(in GraphInput, systemPrompt string) (*GraphState, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	history := NormalizeHistory(in.History)
	messages := make([]*schema.Message, 0, len(history)+2)
	if prompt := strings.TrimSpace(systemPrompt); prompt != "" {
		messages = append(messages, schema.SystemMessage(prompt))
	}
	messages = append(messages, history...)
	messages = append(messages, schema.UserMessage(text))

	return &GraphState{
		Caller:   in.Identity,
		Messages: messages,
	}, nil
}
