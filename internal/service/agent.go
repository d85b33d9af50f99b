// Package service contains the conversation engine, its tool registry and
// the notification sink.
package service

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/cquispe/portfolio-agent/internal/adapter/otel"
	"github.com/cquispe/portfolio-agent/internal/domain/conversation"
	"github.com/cquispe/portfolio-agent/internal/domain/profile"
	"github.com/cquispe/portfolio-agent/internal/logger"
	"github.com/cquispe/portfolio-agent/internal/port/llm"
)

//go:embed templates/system_prompt.tmpl
var templateFS embed.FS

// Answer returned when the model keeps requesting tools past the round cap.
const exhaustedAnswer = "Lo siento, no pude completar la respuesta en este momento. ¿Podrías reformular tu pregunta?"

// Engine runs the chat loop: it sends the conversation to the model, executes
// any tool calls the model requests and feeds the results back until the
// model produces a plain answer.
type Engine struct {
	llm          llm.Client
	tools        *ToolRegistry
	model        string
	maxRounds    int
	systemPrompt string
	log          *slog.Logger
	metrics      *otel.Metrics
}

// NewEngine builds the engine. The system prompt is rendered once from the
// profile; the catalog behind the tool registry is immutable, so the engine
// is safe for concurrent use.
func NewEngine(client llm.Client, tools *ToolRegistry, prof profile.Profile, model string, maxRounds int, log *slog.Logger, metrics *otel.Metrics) (*Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/system_prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse system prompt: %w", err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, prof); err != nil {
		return nil, fmt.Errorf("render system prompt: %w", err)
	}

	if maxRounds < 1 {
		maxRounds = 1
	}

	return &Engine{
		llm:          client,
		tools:        tools,
		model:        model,
		maxRounds:    maxRounds,
		systemPrompt: sb.String(),
		log:          log,
		metrics:      metrics,
	}, nil
}

// Chat answers one user message given the prior conversation. history must
// hold alternating user/assistant messages as previously returned to the
// client; the engine prepends its own system prompt.
func (e *Engine) Chat(ctx context.Context, message string, history []conversation.Message) (string, error) {
	chatID := uuid.NewString()
	ctx = logger.WithChatID(ctx, chatID)
	log := e.log.With("chat_id", chatID)

	start := time.Now()
	e.metrics.ChatStarted(ctx)

	messages := make([]conversation.Message, 0, len(history)+2)
	messages = append(messages, conversation.System(e.systemPrompt))
	messages = append(messages, history...)
	messages = append(messages, conversation.User(message))

	for round := 0; round < e.maxRounds; round++ {
		resp, err := e.llm.Complete(ctx, llm.ChatRequest{
			Model:    e.model,
			Messages: messages,
			Tools:    e.tools.Defs(),
		})
		if err != nil {
			e.metrics.ChatCompleted(ctx, start, false)
			return "", fmt.Errorf("completar chat: %w", err)
		}

		reply := resp.Message
		if len(reply.ToolCalls) == 0 {
			e.metrics.ChatCompleted(ctx, start, true)
			return reply.Content, nil
		}

		// The assistant message carrying the tool calls must stay in the
		// transcript verbatim, followed by one tool message per call with
		// the matching call ID.
		messages = append(messages, reply)
		for _, call := range reply.ToolCalls {
			log.Info("dispatching tool",
				"tool", call.Name,
				"arguments", string(call.Arguments),
			)
			e.metrics.ToolDispatched(ctx, call.Name)

			result := e.tools.Dispatch(ctx, call.Name, call.Arguments)
			messages = append(messages, conversation.ToolResult(call.ID, result))
		}
	}

	log.Warn("tool rounds exhausted", "max_rounds", e.maxRounds)
	e.metrics.ChatCompleted(ctx, start, true)
	return exhaustedAnswer, nil
}
