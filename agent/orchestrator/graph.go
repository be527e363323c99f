package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	nodex "github.com/tanpawarit/Chative-Car-Rental/agent/nodes"
)

const (
	nodeValidateRequest = "validate_request"
	nodeAskModel        = "ask_model"
	nodeDispatchTool    = "dispatch_tool"
	nodeFollowUp        = "follow_up"
	nodeDirectReply     = "direct_reply"
)

func (o *Orchestrator) compileHandleChatGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode(nodeValidateRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.systemPrompt)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeValidateRequest, err)
	}

	if err := graph.AddLambdaNode(nodeAskModel,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AskModel(ctx, in, o.chatModel)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeAskModel, err)
	}

	if err := graph.AddLambdaNode(nodeDispatchTool,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.DispatchTool(ctx, in, o.tools)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeDispatchTool, err)
	}

	if err := graph.AddLambdaNode(nodeFollowUp,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FollowUp(ctx, in, o.chatModel)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeFollowUp, err)
	}

	if err := graph.AddLambdaNode(nodeDirectReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeDirectReply, err)
	}

	branch := compose.NewGraphBranch(func(ctx context.Context, in *nodex.GraphState) (string, error) {
		if in.HasToolCall() {
			return nodeDispatchTool, nil
		}
		return nodeDirectReply, nil
	}, map[string]bool{
		nodeDispatchTool: true,
		nodeDirectReply:  true,
	})
	if err := graph.AddBranch(nodeAskModel, branch); err != nil {
		return nil, fmt.Errorf("add branch %s: %w", nodeAskModel, err)
	}

	edges := [][2]string{
		{compose.START, nodeValidateRequest},
		{nodeValidateRequest, nodeAskModel},
		{nodeDispatchTool, nodeFollowUp},
		{nodeFollowUp, compose.END},
		{nodeDirectReply, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_chat"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
