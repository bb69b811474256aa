package cmd

import (
	"github.com/spf13/cobra"
)

var reassignCmd = &cobra.Command{
	Use:   "reassign <mission>",
	Short: "Void stale assignments and plan replacements for a mission",
	Args:  cobra.ExactArgs(1),
	RunE:  runReassign,
}

func init() {
	rootCmd.AddCommand(reassignCmd)
}

func runReassign(cmd *cobra.Command, args []string) error {
	eng, err := offlineEngine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	plan, err := eng.FindUrgentReassignment(args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), plan)
}
