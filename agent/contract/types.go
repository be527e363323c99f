package contract

import (
	"encoding/json"
	"strings"
)

// Role labels as stored by the presentation layer.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleModel     = "model"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Identity is the caller resolved upstream of the chat endpoint. The zero value
// means an anonymous caller.
type Identity struct {
	UserID string `json:"user_id,omitempty"`
}

func (i Identity) IsAnonymous() bool {
	return strings.TrimSpace(i.UserID) == ""
}

type ChatRequest struct {
	Message  string   `json:"message"`
	History  []Turn   `json:"history"`
	Identity Identity `json:"-"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ToolRequest struct {
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BookingConfirmation is the result payload of a successful booking.
type BookingConfirmation struct {
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

// Text returns the human-readable form of the result when it has one.
// Structured payloads such as listing views report false.
func (r ToolResult) Text() (string, bool) {
	if msg := strings.TrimSpace(r.Error); msg != "" {
		return msg, true
	}
	switch v := r.Result.(type) {
	case string:
		return v, strings.TrimSpace(v) != ""
	case BookingConfirmation:
		return v.Message, strings.TrimSpace(v.Message) != ""
	case *BookingConfirmation:
		if v == nil {
			return "", false
		}
		return v.Message, strings.TrimSpace(v.Message) != ""
	default:
		return "", false
	}
}

// ResponseContent encodes the result as the function-response body sent back to
// the oracle.
func (r ToolResult) ResponseContent() (string, error) {
	payload := map[string]any{}
	if r.Error != "" {
		payload["error"] = r.Error
	} else {
		payload["result"] = r.Result
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
