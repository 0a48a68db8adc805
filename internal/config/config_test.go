// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d["database.type"] != "sqlite" {
		t.Fatalf("unexpected default database.type: %v", d["database.type"])
	}
	if d["database.dsn"] != "./gridpulse.db" {
		t.Fatalf("unexpected default database.dsn: %v", d["database.dsn"])
	}
	if d["seed.days"] != 7 {
		t.Fatalf("unexpected default seed.days: %v", d["seed.days"])
	}
	if d["deps.manifest"] != "./deps.yaml" {
		t.Fatalf("unexpected default deps.manifest: %v", d["deps.manifest"])
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig[Config](nil, Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Type != "sqlite" {
		t.Fatalf("expected default database type, got %q", c.Database.Type)
	}
	if c.Seed.Days != 7 {
		t.Fatalf("expected default seed days, got %d", c.Seed.Days)
	}
	if c.Seed.Clear {
		t.Fatal("expected clear to default to false")
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridpulse.yaml")
	content := `database:
  type: postgres
  dsn: "postgres://gridpulse:pw@localhost:5432/gridpulse"
seed:
  days: 30
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	c, err := LoadConfig[Config](nil, Defaults(), &path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Type != "postgres" {
		t.Fatalf("expected postgres from config file, got %q", c.Database.Type)
	}
	if c.Seed.Days != 30 {
		t.Fatalf("expected 30 seed days from config file, got %d", c.Seed.Days)
	}
	// Keys absent from the file keep their defaults.
	if c.Deps.Manifest != "./deps.yaml" {
		t.Fatalf("expected default manifest path, got %q", c.Deps.Manifest)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("GRIDPULSE_DATABASE_TYPE", "mysql")
	t.Setenv("GRIDPULSE_SEED_DAYS", "14")

	c, err := LoadConfig[Config](nil, Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Type != "mysql" {
		t.Fatalf("expected env to override database type, got %q", c.Database.Type)
	}
	if c.Seed.Days != 14 {
		t.Fatalf("expected env to override seed days, got %d", c.Seed.Days)
	}
}

func TestLoadConfigFlagOverride(t *testing.T) {
	t.Setenv("GRIDPULSE_DATABASE_DSN", "env.db")

	cmd := &cobra.Command{}
	cmd.Flags().String("database.dsn", "", "")
	if err := cmd.Flags().Set("database.dsn", "flag.db"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	c, err := LoadConfig[Config](cmd, Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Database.Dsn != "flag.db" {
		t.Fatalf("expected the flag to win over the environment, got %q", c.Database.Dsn)
	}
}
