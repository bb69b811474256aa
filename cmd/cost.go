package cmd

import (
	"github.com/spf13/cobra"
)

var costCmd = &cobra.Command{
	Use:   "cost <mission>",
	Short: "Project mission cost from its current assignments",
	Args:  cobra.ExactArgs(1),
	RunE:  runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	eng, err := offlineEngine()
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	cost, overrun, err := eng.ComputeCost(args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), struct {
		Cost    float64 `json:"cost"`
		Overrun bool    `json:"overrun"`
	}{cost, overrun})
}
