package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"gitlab.com/railsync.net/internal/adapter/logging"
	"gitlab.com/railsync.net/internal/adapter/memory"
	"gitlab.com/railsync.net/internal/adapter/postgres/ledgerrepository"
	"gitlab.com/railsync.net/internal/adapter/redis/ledgerport"
	"gitlab.com/railsync.net/internal/adapter/screenshots"
	"gitlab.com/railsync.net/internal/adapter/testrail"
	"gitlab.com/railsync.net/internal/config"
	"gitlab.com/railsync.net/internal/core/ports/primary"
	"gitlab.com/railsync.net/internal/core/ports/secondary"
	"gitlab.com/railsync.net/internal/core/services/attachment"
	"gitlab.com/railsync.net/internal/core/services/run"
	"gitlab.com/railsync.net/internal/core/services/syncer"
	"gitlab.com/railsync.net/internal/static/errs"
)

const serviceName = "railsync"

var envName string

var rootCmd = &cobra.Command{
	Use:           serviceName,
	Short:         "Report Cypress results to TestRail",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return InitReader(envName)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "load <env>.env before running")
	rootCmd.AddCommand(serveCmd, syncCmd, reportRunCmd, closeRunCmd, startRunCmd, casesCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// InitReader loads <environment>.env into the process environment
func InitReader(environment string) error {
	if environment == "" {
		return nil
	}
	if err := godotenv.Load(environment + ".env"); err != nil {
		return fmt.Errorf("error loading %s.env file: %w", environment, err)
	}
	return nil
}

// application holds the wiring shared by the TestRail commands
type application struct {
	env     map[string]string
	cfg     *config.AppConfig
	logger  *logging.ZapLogger
	client  *testrail.Client
	ledger  secondary.SyncLedger
	closers []func()
}

func newApplication(ctx context.Context) (*application, error) {
	env := config.Environ()
	logger := logging.NewZapLogger(config.LogLevel(env))

	sysCfg, err := config.NewSystemConfig(env)
	if err != nil {
		logger.Sync()
		return nil, err
	}
	logger.Debug("Loaded TestRail config", "testrail", sysCfg.TestRailConfig.Masked())

	app := &application{
		env:    env,
		cfg:    sysCfg,
		logger: logger,
		client: testrail.NewClient(sysCfg.TestRailConfig, logger),
	}

	ledger, closeLedger, err := setupLedger(ctx, sysCfg.LedgerConfig, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.ledger = ledger
	app.closers = append(app.closers, closeLedger)

	return app, nil
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.logger.Sync()
}

func (a *application) runService(runIDDir string) *run.RunService {
	return run.NewRunService(a.client, a.ledger, a.cfg.TestRailConfig, a.logger, runIDDir)
}

func (a *application) synchronizer(runID int) *syncer.Synchronizer {
	store := screenshots.NewStore(a.cfg.SyncConfig.ScreenshotsDir)
	uploader := attachment.NewUploader(a.client, store, a.logger)
	return syncer.NewSynchronizer(runID, a.client, uploader, a.ledger, a.logger, a.cfg.SyncConfig)
}

// resolveRunID takes the run id from args when given, else from the environment
func (a *application) resolveRunID(args []string) (int, error) {
	if len(args) > 0 {
		return config.ResolveRunID(map[string]string{config.EnvRunID: args[0]}, "")
	}
	return config.ResolveRunID(a.env, ".")
}

// setupLedger opens the sync ledger selected by LEDGER_DRIVER
func setupLedger(ctx context.Context, cfg *config.LedgerConfig, logger primary.Logger) (secondary.SyncLedger, func(), error) {
	switch cfg.Driver {
	case config.LedgerMemory:
		return memory.NewLedger(), func() {}, nil

	case config.LedgerRedis:
		redisClient := setupRedis(cfg)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return ledgerport.NewLedgerRepository(redisClient, logger), func() { _ = redisClient.Close() }, nil

	case config.LedgerPostgres:
		db, err := setupDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		repo := ledgerrepository.NewLedgerRepository(db, logger, cfg.DBSchema)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil

	default:
		return nil, nil, errs.Configuration("unknown LEDGER_DRIVER %q", cfg.Driver)
	}
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.LedgerConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.LedgerConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
}
