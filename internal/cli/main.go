// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for the GridPulse
// provisioning tool using the Cobra library. It defines the root
// command (the full setup sequence), the per-phase subcommands, flags,
// and the entry point for execution.

package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gridpulse/gridpulse/internal/admin"
	"github.com/gridpulse/gridpulse/internal/config"
	"github.com/gridpulse/gridpulse/internal/db"
	"github.com/gridpulse/gridpulse/internal/logging"
	"github.com/gridpulse/gridpulse/internal/seed"
	"github.com/gridpulse/gridpulse/internal/setup"
)

var version = "dev" // overridden via SetVersion from the linker-set value

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
)

// SetVersion records the build version shown by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

// setupDefaultServices loads configuration for the invoked command.
func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	explicitPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), explicitPath)
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		// First run, or the config file was deleted; the defaults carry us.
		err = nil
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Guard against empty values from a hand-edited config file.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = config.Defaults()["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = config.Defaults()["database.dsn"].(string)
	}

	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only honor --config when the user explicitly set it.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// openStore opens the configured database with migrations applied.
func openStore() (db.Store, error) {
	if db.IsInitialized() {
		return db.GetStore(), nil
	}
	s, err := db.New(appConfig.Database.Type, appConfig.Database.Dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

// applyDefaultFlags defines the shared database flags on a command.
// pflag panics on duplicate definitions (NewRootCmd may be called more
// than once in tests), so check first.
func applyDefaultFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./gridpulse.db", "Database connection string (DSN)")
	}
}

// NewRootCmd creates and configures a new root cobra command. Tests use
// fresh instances for isolation.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridpulse-setup",
		Short: "gridpulse-setup provisions a GridPulse deployment.",
		Long: `gridpulse-setup bootstraps the GridPulse power monitoring backend.

Run without a subcommand it executes the full provisioning sequence:
install system dependencies, apply schema migrations, optionally create
the administrative account (set CREATE_SUPERUSER=1), then seed sample
data and the default tariffs. Each step can be rerun individually via
the subcommands. The sequence is fail-fast: the first failing step
aborts the run and its exit status becomes the process exit code.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		RunE:              runSetupSequence,
	}
	cmd.Version = version

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (includes DB logs)")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	applyDefaultFlags(cmd)
	if cmd.Flags().Lookup("deps.manifest") == nil {
		cmd.Flags().String("deps.manifest", "./deps.yaml", "Dependency manifest file")
	}

	newMigrateCmd := migrateCmd()
	newSeedCmd := seedCmd()
	newTariffsCmd := createTariffsCmd()
	newAdminCmd := createAdminCmd()
	newConfigCmd := configInitCmd()
	newMaintainCmd := dbMaintainCmd()
	for _, sub := range []*cobra.Command{newMigrateCmd, newSeedCmd, newTariffsCmd, newAdminCmd, newConfigCmd, newMaintainCmd} {
		applyDefaultFlags(sub)
		cmd.AddCommand(sub)
	}

	return cmd
}

// runSetupSequence is the root command: the fixed provisioning sequence.
func runSetupSequence(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// The database handle is shared across the migration and seeding
	// steps; it is opened by the plan step and promoted to a full store
	// once migrations have been applied.
	var sqlDB *sql.DB
	var store db.Store

	steps := []setup.Step{
		{
			Name: "Install dependencies",
			Skip: func() bool {
				if _, err := os.Stat(appConfig.Deps.Manifest); err != nil {
					logging.Infof("no dependency manifest at %s, skipping install", appConfig.Deps.Manifest)
					return true
				}
				return false
			},
			Run: func(ctx context.Context) error {
				return setup.InstallDependencies(ctx, appConfig.Deps.Manifest)
			},
		},
		{
			Name: "Plan schema migrations",
			Run: func(ctx context.Context) error {
				var err error
				sqlDB, err = db.Open(appConfig.Database.Type, appConfig.Database.Dsn)
				if err != nil {
					return err
				}
				pending, err := db.PendingMigrations(sqlDB, appConfig.Database.Type)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "  schema is up to date")
					return nil
				}
				for _, v := range pending {
					fmt.Fprintf(out, "  pending: %s\n", v)
				}
				return nil
			},
		},
		{
			Name: "Apply schema migrations",
			Run: func(ctx context.Context) error {
				if err := db.RunMigrations(sqlDB, appConfig.Database.Type); err != nil {
					return err
				}
				var err error
				store, err = db.NewStore(sqlDB, appConfig.Database.Type)
				return err
			},
		},
		{
			Name: "Create superuser",
			Skip: func() bool { return !admin.Requested() },
			Run: func(ctx context.Context) error {
				creds, err := admin.CredentialsFromEnv()
				if err != nil {
					return err
				}
				u, err := admin.CreateSuperuser(store, creds)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  created superuser %q\n", u.Username)
				return nil
			},
		},
		{
			Name: "Generate sample data",
			Run: func(ctx context.Context) error {
				return seed.Generate(store, out, seed.Options{
					Days:  appConfig.Seed.Days,
					Clear: appConfig.Seed.Clear,
				})
			},
		},
		{
			Name: "Create tariff records",
			Run: func(ctx context.Context) error {
				_, _, err := seed.CreateTariffs(store, out)
				return err
			},
		},
	}

	return setup.NewSequencer(out, steps...).Run(ctx)
}
