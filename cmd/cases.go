package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/railsync.net/internal/core/services/casefinder"
)

var casesCmd = &cobra.Command{
	Use:   "cases <spec files...>",
	Short: "List the TestRail case ids tagged in spec files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseIDs, err := casefinder.FindCases(args, nil)
		if err != nil {
			return err
		}
		for _, id := range casefinder.Unique(caseIDs) {
			fmt.Fprintf(cmd.OutOrStdout(), "C%d\n", id)
		}
		return nil
	},
}
