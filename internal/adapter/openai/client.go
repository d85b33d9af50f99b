// Package openai implements the llm port on top of the OpenAI
// chat-completions API. Pointing BaseURL at any OpenAI-compatible endpoint
// (DeepSeek for the offline classifier) works unchanged.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/cquispe/portfolio-agent/internal/domain/conversation"
	"github.com/cquispe/portfolio-agent/internal/port/llm"
)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	api *goopenai.Client
}

// NewClient creates a chat-completion client. baseURL may be empty for the
// public OpenAI API. The HTTP timeout bounds a single model call so a wedged
// upstream cannot pin a request forever.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: goopenai.NewClientWithConfig(cfg)}
}

// Complete sends the full message sequence plus tool schema and returns the
// model's reply.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	apiReq := goopenai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    toAPIMessages(req.Messages),
		Tools:       toAPITools(req.Tools),
		Temperature: req.Temperature,
	}
	if req.ForceTool != "" {
		apiReq.ToolChoice = goopenai.ToolChoice{
			Type:     goopenai.ToolTypeFunction,
			Function: goopenai.ToolFunction{Name: req.ForceTool},
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty choices")
	}

	return &llm.ChatResponse{Message: fromAPIMessage(resp.Choices[0].Message)}, nil
}

func toAPIMessages(messages []conversation.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for i := range messages {
		m := goopenai.ChatCompletionMessage{
			Role:       messages[i].Role,
			Content:    messages[i].Content,
			ToolCallID: messages[i].ToolCallID,
		}
		for _, tc := range messages[i].ToolCalls {
			m.ToolCalls = append(m.ToolCalls, goopenai.ToolCall{
				ID:   tc.ID,
				Type: goopenai.ToolTypeFunction,
				Function: goopenai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
		out = append(out, m)
	}
	return out
}

func toAPITools(tools []llm.ToolDef) []goopenai.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]goopenai.Tool, 0, len(tools))
	for i := range tools {
		out = append(out, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        tools[i].Name,
				Description: tools[i].Description,
				Parameters:  tools[i].Parameters,
			},
		})
	}
	return out
}

func fromAPIMessage(m goopenai.ChatCompletionMessage) conversation.Message {
	out := conversation.Message{
		Role:    m.Role,
		Content: m.Content,
	}
	for _, tc := range m.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, conversation.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return out
}
