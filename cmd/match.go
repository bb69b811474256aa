package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyopshq/skyops/core/model"
)

var matchKind string

var matchCmd = &cobra.Command{
	Use:   "match <mission>",
	Short: "Rank candidate pilots or drones for a mission",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchKind, "kind", "pilot", "resource kind: pilot or drone")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	var kind model.ResourceKind
	switch matchKind {
	case "pilot":
		kind = model.KindPilot
	case "drone":
		kind = model.KindDrone
	default:
		return fmt.Errorf("unknown kind %q", matchKind)
	}

	eng, err := offlineEngine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	candidates, err := eng.MatchCandidates(args[0], kind)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), candidates)
}
