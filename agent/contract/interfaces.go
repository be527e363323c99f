package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ToolGateway advertises tool declarations and executes a single tool request.
type ToolGateway interface {
	Infos() []*schema.ToolInfo
	Execute(ctx context.Context, req ToolRequest, caller Identity) (ToolResult, error)
}

// Chatter answers one chat request.
type Chatter interface {
	HandleChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
