package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gitlab.com/railsync.net/internal/adapter/crypto"
	"gitlab.com/railsync.net/internal/core/ports/primary"
	http2 "gitlab.com/railsync.net/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server receiving after:spec results",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Set up graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	runID, err := app.resolveRunID(nil)
	if err != nil {
		return err
	}

	var tokens primary.TokenService
	if app.cfg.JwtConfig.Enabled() {
		tokens = crypto.NewJWTService(app.cfg.JwtConfig)
	}

	serviceProvider := http2.NewServiceProvider(app.synchronizer(runID), app.runService(""), tokens)
	httpServer := http2.NewServer(app.cfg.ServerConfig.Port, serviceName, *serviceProvider, app.logger)
	if err := httpServer.Init(); err != nil {
		return err
	}

	app.logger.Info("Starting railsync server", "runId", runID, "ledger", app.cfg.LedgerConfig.Driver)
	serveErr := httpServer.Start(ctx)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Stop(shutdownCtx); err != nil {
		app.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	app.logger.Info("successfully shutdown server")
	return nil
}
