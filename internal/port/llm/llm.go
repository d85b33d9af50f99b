// Package llm defines the port for the external conversational model.
package llm

import (
	"context"
	"encoding/json"

	"github.com/cquispe/portfolio-agent/internal/domain/conversation"
)

// ToolDef describes one callable operation handed to the model so it can
// decide when and how to invoke it. Parameters is a JSON-schema object.
type ToolDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// ChatRequest is one completion request: the full message sequence plus the
// tool schema. ForceTool names a tool the model must call; empty leaves the
// choice to the model. Temperature of zero means provider default.
type ChatRequest struct {
	Model       string
	Messages    []conversation.Message
	Tools       []ToolDef
	ForceTool   string
	Temperature float32
}

// ChatResponse is the model's reply. A non-empty Message.ToolCalls means the
// model wants tools executed before it can answer.
type ChatResponse struct {
	Message conversation.Message
}

// Client is the port interface for chat completion.
type Client interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
