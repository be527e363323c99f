package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

// FinalizeReply returns the model's direct answer when no tool was requested.
func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil || in.ModelReply == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.ModelReply.Content)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: first pass", contractx.ErrEmptyReply)
	}
	return GraphOutput{Reply: reply}, nil
}
