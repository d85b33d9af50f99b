// Package otel holds the OpenTelemetry instruments for the service. The
// instruments are created against the global meter provider; wiring an
// exporter is a deployment concern, without one they are no-ops.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics bundles the service's counters and histograms.
type Metrics struct {
	chatsStarted     metric.Int64Counter
	chatsCompleted   metric.Int64Counter
	toolDispatches   metric.Int64Counter
	notifyFailures   metric.Int64Counter
	chatDurationSecs metric.Float64Histogram
}

// NewMetrics registers the instruments on the global meter.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("portfolio-agent")

	chatsStarted, err := meter.Int64Counter("chats_started_total",
		metric.WithDescription("Chat requests received"))
	if err != nil {
		return nil, err
	}
	chatsCompleted, err := meter.Int64Counter("chats_completed_total",
		metric.WithDescription("Chat requests answered"))
	if err != nil {
		return nil, err
	}
	toolDispatches, err := meter.Int64Counter("tool_dispatches_total",
		metric.WithDescription("Tool calls dispatched by the agent loop"))
	if err != nil {
		return nil, err
	}
	notifyFailures, err := meter.Int64Counter("notification_failures_total",
		metric.WithDescription("Notifications that could not be delivered"))
	if err != nil {
		return nil, err
	}
	chatDuration, err := meter.Float64Histogram("chat_duration_seconds",
		metric.WithDescription("End-to-end chat latency"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		chatsStarted:     chatsStarted,
		chatsCompleted:   chatsCompleted,
		toolDispatches:   toolDispatches,
		notifyFailures:   notifyFailures,
		chatDurationSecs: chatDuration,
	}, nil
}

func (m *Metrics) ChatStarted(ctx context.Context) {
	m.chatsStarted.Add(ctx, 1)
}

func (m *Metrics) ChatCompleted(ctx context.Context, start time.Time, ok bool) {
	m.chatsCompleted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
	m.chatDurationSecs.Record(ctx, time.Since(start).Seconds())
}

func (m *Metrics) ToolDispatched(ctx context.Context, tool string) {
	m.toolDispatches.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

func (m *Metrics) NotifyFailed(ctx context.Context, provider string) {
	m.notifyFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}
