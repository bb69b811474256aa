package syncnotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skyopshq/skyops/auth"
	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/core/logger"
)

// WebhookConfig defines the HTTP push target for sync notifications.
// Credentials are optional: a dashboard behind OAuth2 client credentials
// sets Auth, an open one leaves it empty.
type WebhookConfig struct {
	URL       string    `json:"url"`
	Auth      auth.Conf `json:"auth"`
	TimeoutMS int       `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *WebhookConfig) SetDefaults() {
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields.
func (c WebhookConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	return nil
}

// WebhookNotifier POSTs SyncChange payloads to the configured endpoint.
type WebhookNotifier struct {
	cfg    WebhookConfig
	client *http.Client
	creds  *auth.ClientCred
	log    logger.Logger
}

// NewWebhookNotifier builds the notifier. No connection is made until
// the first change is pushed.
func NewWebhookNotifier(cfg WebhookConfig, log logger.Logger) (*WebhookNotifier, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := &WebhookNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		log:    log,
	}
	if cfg.Auth.Enabled() {
		n.creds = auth.NewClientCred(cfg.Auth)
	}
	return n, nil
}

// NotifyChange posts the change as JSON. Any non-2xx response is an
// error so the engine can log the failed push.
func (n *WebhookNotifier) NotifyChange(ctx context.Context, change engine.SyncChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.creds != nil {
		if err := n.creds.SetAuthHeader(req); err != nil {
			return fmt.Errorf("authorize push: %w", err)
		}
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push to %s: status %d", n.cfg.URL, resp.StatusCode)
	}
	return nil
}

// Close releases nothing; the HTTP client holds no persistent state.
func (n *WebhookNotifier) Close() error { return nil }

// MultiNotifier fans a change out to every notifier and returns the
// first error. All notifiers are attempted even when an early one fails.
type MultiNotifier struct {
	notifiers []engine.SyncNotifier
}

func NewMultiNotifier(notifiers ...engine.SyncNotifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) NotifyChange(ctx context.Context, change engine.SyncChange) error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.NotifyChange(ctx, change); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *MultiNotifier) Close() error {
	var firstErr error
	for _, n := range m.notifiers {
		if err := n.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
