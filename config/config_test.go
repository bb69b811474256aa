package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `server:
  addr: ":9090"
data:
  dir: "/var/lib/skyops/data"
identity:
  aliases:
    "Solar Farm Audit": "PRJ004"
matching:
  pilot:
    skill: 8
    availability: 3
    location: 1
    budget: 1
metrics:
  prometheus_enabled: true
  prometheus_port: 2113
sync:
  enabled: true
  mqtt:
    broker: "tcp://localhost:1883"
    client_id: "cli"
audit:
  backend: "sqlite"
  path: "audit.db"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.addr", cfg.Server.Addr, ":9090"},
		{"data.dir", cfg.Data.Dir, "/var/lib/skyops/data"},
		{"alias", cfg.Identity.Aliases["Solar Farm Audit"], "PRJ004"},
		{"pilot.skill", cfg.Matching.Pilot.Skill, 8},
		{"drone.capability", cfg.Matching.Drone.Capability, 6},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, 2113},
		{"sync.enabled", cfg.Sync.Enabled, true},
		{"sync.broker", cfg.Sync.MQTT.Broker, "tcp://localhost:1883"},
		{"sync.topic_prefix", cfg.Sync.MQTT.TopicPrefix, "skyops/sync"},
		{"audit.backend", cfg.Audit.Backend, "sqlite"},
		{"audit.path", cfg.Audit.Path, "audit.db"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr default = %q", cfg.Server.Addr)
	}
	if cfg.Audit.Backend != "jsonl" {
		t.Errorf("audit backend default = %q", cfg.Audit.Backend)
	}
	if cfg.Matching.Pilot.Skill == 0 || cfg.Matching.Drone.Capability == 0 {
		t.Error("weight defaults not applied")
	}
}

func TestLoadWebhookSync(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `sync:
  enabled: true
  webhook:
    url: "https://dashboard.example.com/hooks/roster"
    auth:
      client_id: "skyops"
      client_secret: "s3cret"
      token_url: "https://auth.example.com/token"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Sync.Webhook.URL != "https://dashboard.example.com/hooks/roster" {
		t.Errorf("webhook url = %q", cfg.Sync.Webhook.URL)
	}
	if cfg.Sync.Webhook.TimeoutMS != 5000 {
		t.Errorf("webhook timeout default = %d", cfg.Sync.Webhook.TimeoutMS)
	}
	if !cfg.Sync.Webhook.Auth.Enabled() {
		t.Error("webhook auth should be enabled")
	}
}

func TestLoadSyncWithoutTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "sync:\n  enabled: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error when sync has no notifier target")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadBadAuditBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "audit:\n  backend: \"postgres\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected backend validation error")
	}
}
