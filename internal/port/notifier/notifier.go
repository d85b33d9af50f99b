// Package notifier defines the push-notification port.
package notifier

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when a notifier is missing its credentials.
// Callers treat it as "notifications disabled", not as a failure.
var ErrNotConfigured = errors.New("notifier: not configured")

// Notifier is the port interface for delivering short operator alerts.
type Notifier interface {
	// Name returns the unique identifier for this notifier (e.g. "pushover").
	Name() string

	// Send delivers one short text message.
	Send(ctx context.Context, message string) error
}
