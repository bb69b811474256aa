package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/pkg/export"
)

var (
	exportWhat   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conflicts or assignments for spreadsheet review",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportWhat, "what", "conflicts", "dataset: conflicts or assignments")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or json")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	eng, err := offlineEngine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	out := cmd.OutOrStdout()
	switch exportWhat {
	case "conflicts":
		conflicts, err := eng.DetectConflicts(engine.ScopeAll)
		if err != nil {
			return err
		}
		if exportFormat == "json" {
			return export.WriteConflictsJSON(out, conflicts)
		}
		return export.WriteConflictsCSV(out, conflicts)
	case "assignments":
		snap := eng.Snapshot()
		if exportFormat == "json" {
			return printJSON(out, snap.Assignments)
		}
		return export.WriteAssignmentsCSV(out, snap.Assignments)
	default:
		return fmt.Errorf("unknown dataset %q", exportWhat)
	}
}
