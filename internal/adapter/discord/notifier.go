// Package discord implements a notifier.Notifier posting to a Discord
// webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cquispe/portfolio-agent/internal/port/notifier"
)

const providerName = "discord"

func init() {
	notifier.Register(providerName, func(config map[string]string) (notifier.Notifier, error) {
		return NewNotifier(config["webhook_url"]), nil
	})
}

// Notifier sends messages through a Discord webhook.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a Discord webhook notifier.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: http.DefaultClient,
	}
}

func (n *Notifier) Name() string { return providerName }

// Send posts one message to the webhook. Returns ErrNotConfigured when the
// webhook URL is absent.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.webhookURL == "" {
		return notifier.ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return fmt.Errorf("discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord webhook %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
