// Package pushover implements a notifier.Notifier for the Pushover push API.
package pushover

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cquispe/portfolio-agent/internal/port/notifier"
)

const (
	providerName = "pushover"
	endpoint     = "https://api.pushover.net/1/messages.json"
)

func init() {
	notifier.Register(providerName, func(config map[string]string) (notifier.Notifier, error) {
		return NewNotifier(config["token"], config["user"]), nil
	})
}

// Notifier sends push notifications through Pushover.
type Notifier struct {
	token      string
	user       string
	endpoint   string
	httpClient *http.Client
}

// NewNotifier creates a Pushover notifier with the given application token
// and user key.
func NewNotifier(token, user string) *Notifier {
	return &Notifier{
		token:      token,
		user:       user,
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
}

func (n *Notifier) Name() string { return providerName }

// Send posts one message. Returns ErrNotConfigured when credentials are
// absent so callers can degrade to a no-op.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.token == "" || n.user == "" {
		return notifier.ErrNotConfigured
	}

	form := url.Values{}
	form.Set("token", n.token)
	form.Set("user", n.user)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("pushover request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushover send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pushover API %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
