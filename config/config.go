// Package config loads engine configuration from YAML or JSON files with
// optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/skyopshq/skyops/core/match"
	"github.com/skyopshq/skyops/core/metrics"
	"github.com/skyopshq/skyops/infra/syncnotify"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Data     DataConfig     `json:"data"`
	Identity IdentityConfig `json:"identity"`
	Matching MatchingConfig `json:"matching"`
	Metrics  metrics.Config `json:"metrics"`
	Sync     SyncConfig     `json:"sync"`
	Audit    AuditConfig    `json:"audit"`
}

// ServerConfig holds the HTTP API listen settings. A non-empty token
// gates the mutating routes behind bearer auth.
type ServerConfig struct {
	Addr  string `json:"addr"`
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// DataConfig points at the roster CSV export directory.
type DataConfig struct {
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *DataConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "data"
	}
}

// IdentityConfig carries extra mission label aliases beyond the two
// built-in naming conventions.
type IdentityConfig struct {
	Aliases map[string]string `json:"aliases"`
}

// MatchingConfig overrides the ranking weights. Zero-value weight sets
// fall back to the built-in defaults.
type MatchingConfig struct {
	Pilot match.PilotWeights `json:"pilot"`
	Drone match.DroneWeights `json:"drone"`
}

// SetDefaults applies sane defaults.
func (c *MatchingConfig) SetDefaults() {
	if c.Pilot == (match.PilotWeights{}) {
		c.Pilot = match.DefaultPilotWeights()
	}
	if c.Drone == (match.DroneWeights{}) {
		c.Drone = match.DefaultDroneWeights()
	}
}

// SyncConfig enables the outbound change notifiers. MQTT and webhook can
// be active at the same time; each is switched on by filling in its
// target.
type SyncConfig struct {
	Enabled bool                     `json:"enabled"`
	MQTT    syncnotify.Config        `json:"mqtt"`
	Webhook syncnotify.WebhookConfig `json:"webhook"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SKYOPS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "skyops_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Data.SetDefaults()
	cfg.Matching.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Audit.SetDefaults()
	if err := cfg.Audit.Validate(); err != nil {
		return nil, err
	}
	if cfg.Sync.Enabled {
		if cfg.Sync.MQTT.Broker == "" && cfg.Sync.Webhook.URL == "" {
			return nil, fmt.Errorf("sync enabled but neither mqtt nor webhook configured")
		}
		if cfg.Sync.MQTT.Broker != "" {
			cfg.Sync.MQTT.SetDefaults()
			if err := cfg.Sync.MQTT.Validate(); err != nil {
				return nil, err
			}
		}
		if cfg.Sync.Webhook.URL != "" {
			cfg.Sync.Webhook.SetDefaults()
			if err := cfg.Sync.Webhook.Validate(); err != nil {
				return nil, err
			}
		}
	}
	return &cfg, nil
}
