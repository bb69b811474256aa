package config

import (
	"fmt"
)

// AuditConfig defines settings for audit record storage.
type AuditConfig struct {
	// Backend selects the store type: "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *AuditConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "audit.log"
	}
}

// Validate checks mandatory fields.
func (c AuditConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
