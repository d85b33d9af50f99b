// Package conversation defines the message types exchanged with the
// conversational model.
package conversation

import "encoding/json"

// Message roles. Tool-role messages carry the serialized result of one tool
// invocation back to the model, correlated through ToolCallID.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is one tool-invocation request emitted by the model. Arguments is
// the raw JSON object the model produced; it is decoded by the tool handler,
// never reshaped in transit.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Message is a single entry in the conversation.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// System returns a system-role message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user-role message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ToolResult returns a tool-role message carrying a serialized result,
// tagged with the identifier of the call that produced it.
func ToolResult(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}
