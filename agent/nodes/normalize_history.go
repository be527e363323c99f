package nodes

import (
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
)

// NormalizeHistory maps stored turns onto model roles. A transcript seeded
// with an assistant greeting loses exactly that first turn, since the model
// expects the conversation to open with the user.
func NormalizeHistory(turns []contractx.Turn) []*schema.Message {
	out := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		if roleOf(t.Role) == schema.Assistant {
			out = append(out, schema.AssistantMessage(t.Content, nil))
			continue
		}
		out = append(out, schema.UserMessage(t.Content))
	}

	if len(out) > 0 && out[0].Role == schema.Assistant {
		out = out[1:]
	}
	return out
}

func roleOf(label string) schema.RoleType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case contractx.RoleAssistant, contractx.RoleModel:
		return schema.Assistant
	default:
		return schema.User
	}
}
