// Package syncnotify pushes roster change notifications to the external
// spreadsheet-sync service over MQTT. Notification is one-way: the sync
// layer pulls whatever it needs after being poked; the engine never waits
// for it.
package syncnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/core/logger"
)

// Config defines the MQTT connection for sync notifications.
type Config struct {
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "skyops-engine"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "skyops/sync"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// MQTTNotifier publishes SyncChange payloads to
// <prefix>/<entity>/<action>.
type MQTTNotifier struct {
	client paho.Client
	cfg    Config
	log    logger.Logger
}

// NewMQTTNotifier connects to the broker and returns the notifier.
func NewMQTTNotifier(cfg Config, log logger.Logger) (*MQTTNotifier, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	client := paho.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTNotifier{client: client, cfg: cfg, log: log}, nil
}

// NotifyChange publishes the change as JSON. The publish respects the
// context deadline but never blocks past it.
func (n *MQTTNotifier) NotifyChange(ctx context.Context, change engine.SyncChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s/%s", n.cfg.TopicPrefix, change.Entity, change.Action)
	tok := n.client.Publish(topic, n.cfg.QoS, false, payload)
	deadline, ok := ctx.Deadline()
	wait := 5 * time.Second
	if ok {
		wait = time.Until(deadline)
	}
	if !tok.WaitTimeout(wait) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	return tok.Error()
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() error {
	n.client.Disconnect(250)
	return nil
}
