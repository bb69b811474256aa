package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/core/identity"
	"github.com/skyopshq/skyops/core/match"
	"github.com/skyopshq/skyops/core/roster"
	"github.com/skyopshq/skyops/infra/flatfile"
	"github.com/skyopshq/skyops/infra/logger"
)

// offlineEngine loads the roster CSVs into an engine without any of the
// serving adapters. Used by the one-shot inspection commands.
func offlineEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ids := identity.NewNormalizer(cfg.Identity.Aliases)
	matcher := match.Matcher{Pilot: cfg.Matching.Pilot, Drone: cfg.Matching.Drone}
	eng, err := engine.New(roster.New(), ids, engine.Options{
		Matcher: &matcher,
		Logger:  logger.New("cli"),
	})
	if err != nil {
		return nil, err
	}
	snap, err := flatfile.NewLoader(cfg.Data.Dir, ids).Load()
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	eng.LoadRoster(snap, cfg.Data.Dir)
	return eng, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
