package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/railsync.net/internal/adapter/logging"
	"gitlab.com/railsync.net/internal/config"
)

var syncCmd = &cobra.Command{
	Use:   "sync <results.json>",
	Short: "Report a Cypress results file to the current run",
	Long: `Reads either the results object returned by the Cypress module API
({"runs": [...]}) or a single after:spec payload, and reports every spec in order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	env := config.Environ()
	if !config.HasConfig(env) {
		logger := logging.NewZapLogger(config.LogLevel(env))
		defer logger.Sync()
		logger.Info("TestRail reporting disabled, no TESTRAIL_* variable is set")
		return nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}
	specs, err := parseResults(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	runID, err := app.resolveRunID(nil)
	if err != nil {
		return err
	}

	synchronizer := app.synchronizer(runID)
	out := cmd.OutOrStdout()
	for _, spec := range specs {
		report := synchronizer.SyncSpec(cmd.Context(), spec)
		fmt.Fprintln(out, renderReport(report))
	}
	return nil
}
