package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cquispe/portfolio-agent/internal/adapter/otel"
	"github.com/cquispe/portfolio-agent/internal/port/notifier"
)

// AlertSink delivers best-effort push notifications. Delivery failures are
// logged and counted but never surface to the chat flow.
type AlertSink struct {
	notifier notifier.Notifier
	timeout  time.Duration
	log      *slog.Logger
	metrics  *otel.Metrics
}

// NewAlertSink wraps a notifier. n may be nil, in which case Send is a no-op.
func NewAlertSink(n notifier.Notifier, timeout time.Duration, log *slog.Logger, metrics *otel.Metrics) *AlertSink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AlertSink{notifier: n, timeout: timeout, log: log, metrics: metrics}
}

// Send delivers one message, bounded by the sink's timeout.
func (s *AlertSink) Send(ctx context.Context, message string) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.notifier.Send(ctx, message); err != nil {
		if errors.Is(err, notifier.ErrNotConfigured) {
			s.log.Debug("notifier not configured, dropping message", "provider", s.notifier.Name())
			return
		}
		s.metrics.NotifyFailed(ctx, s.notifier.Name())
		s.log.Warn("notification failed",
			"provider", s.notifier.Name(),
			"error", err,
		)
	}
}
