package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/core/report"
)

var (
	sweepScope       string
	sweepMaintenance bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a conflict sweep over the roster",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepScope, "scope", engine.ScopeAll, "mission reference or \"all\"")
	sweepCmd.Flags().BoolVar(&sweepMaintenance, "maintenance", false, "include drone maintenance flags")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	eng, err := offlineEngine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	conflicts, err := eng.DetectConflicts(sweepScope)
	if err != nil {
		return err
	}
	if !sweepMaintenance {
		return printJSON(cmd.OutOrStdout(), conflicts)
	}
	return printJSON(cmd.OutOrStdout(), map[string]any{
		"conflicts":   conflicts,
		"maintenance": report.MaintenanceFlags(eng.Snapshot(), time.Now().UTC()),
	})
}
