// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridpulse/gridpulse/internal/admin"
	"github.com/gridpulse/gridpulse/internal/config"
	"github.com/gridpulse/gridpulse/internal/db"
	"github.com/gridpulse/gridpulse/internal/seed"
)

// migrateCmd applies pending schema migrations and reports what ran.
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			sqlDB, err := db.Open(appConfig.Database.Type, appConfig.Database.Dsn)
			if err != nil {
				return err
			}
			pending, err := db.PendingMigrations(sqlDB, appConfig.Database.Type)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(out, "Schema is up to date.")
				return nil
			}
			if err := db.RunMigrations(sqlDB, appConfig.Database.Type); err != nil {
				return err
			}
			for _, v := range pending {
				fmt.Fprintf(out, "Applied %s\n", v)
			}
			return nil
		},
	}
}

// seedCmd generates sample data, the standalone equivalent of the
// sequence's seeding step.
func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate sample devices, clients and reading history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			return seed.Generate(store, cmd.OutOrStdout(), seed.Options{
				Days:  appConfig.Seed.Days,
				Clear: appConfig.Seed.Clear,
			})
		},
	}
	cmd.Flags().Int("seed.days", seed.DefaultDays, "Days of historical data to generate")
	cmd.Flags().Bool("seed.clear", false, "Clear existing data before generating")
	return cmd
}

// createTariffsCmd seeds the default energy tariffs.
func createTariffsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tariffs",
		Short: "Create the default energy tariffs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			_, _, err = seed.CreateTariffs(store, cmd.OutOrStdout())
			return err
		},
	}
}

// createAdminCmd creates the administrative account. Unlike the root
// sequence it does not consult CREATE_SUPERUSER; invoking the command
// is the request.
func createAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin",
		Short: "Create the administrative dashboard account",
		Long: `Create the administrative dashboard account.

Credentials come from GRIDPULSE_ADMIN_USERNAME, GRIDPULSE_ADMIN_EMAIL
and GRIDPULSE_ADMIN_PASSWORD. When the password variable is unset and
stdin is a terminal, you are prompted for it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			creds, err := admin.CredentialsFromEnv()
			if err != nil {
				return err
			}
			u, err := admin.CreateSuperuser(store, creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created superuser %q\n", u.Username)
			return nil
		},
	}
}

// configInitCmd persists the effective configuration, giving a fresh
// deployment a gridpulse.yaml to edit instead of relying on flags and
// environment variables every run.
func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config-init",
		Short: "Write the effective configuration to the standard config path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			system, err := cmd.Flags().GetBool("system")
			if err != nil {
				return err
			}
			if err := config.WriteConfigFile(&appConfig, system); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration written.")
			return nil
		},
	}
	cmd.Flags().Bool("system", false, "Write to the system config path instead of the user one")
	return cmd
}

// dbMaintainCmd runs engine-specific maintenance, useful after large
// seeding runs.
func dbMaintainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "db-maintain",
		Short: "Run database maintenance (VACUUM, OPTIMIZE TABLE, ...)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Maintenance complete.")
			return nil
		},
	}
}
