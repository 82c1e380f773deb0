package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/railsync.net/internal/core/services/run"
)

var reportFormat string

var reportRunCmd = &cobra.Command{
	Use:   "report-run [runId]",
	Short: "Print the run metadata",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		runID, err := app.resolveRunID(args)
		if err != nil {
			return err
		}

		r, err := app.runService("").GetRun(cmd.Context(), runID)
		if err != nil {
			return err
		}
		return writeRun(cmd.OutOrStdout(), r, reportFormat)
	},
}

var closeRunCmd = &cobra.Command{
	Use:   "close-run [runId]",
	Short: "Close the run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		runID, err := app.resolveRunID(args)
		if err != nil {
			return err
		}

		r, err := app.runService("").CloseRun(cmd.Context(), runID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "closed run %d %q\n", r.ID, r.Name)
		return nil
	},
}

var startRunReq run.StartRunRequest

var startRunCmd = &cobra.Command{
	Use:   "start-run <spec files...>",
	Short: "Create a run with the cases tagged in the specs and save its id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		req := startRunReq
		req.Specs = args
		r, err := app.runService(".").StartRun(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "started run %d %q\n", r.ID, r.Name)
		return nil
	},
}

func init() {
	reportRunCmd.Flags().StringVarP(&reportFormat, "format", "f", formatTable, "output format: json, yaml or table")
	startRunCmd.Flags().StringVar(&startRunReq.Name, "name", "", "run name")
	startRunCmd.Flags().StringVar(&startRunReq.Description, "description", "", "run description")
}
