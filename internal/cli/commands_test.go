// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runSub(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--database.type", "sqlite", "--database.dsn", dsn))
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "gridpulse.db")

	out, err := runSub(t, dsn, "migrate")
	if err != nil {
		t.Fatalf("migrate failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Applied 000001_initial_schema") {
		t.Fatalf("missing applied migration output:\n%s", out)
	}
	if !strings.Contains(out, "Applied 000002_admin_users") {
		t.Fatalf("missing applied migration output:\n%s", out)
	}

	out, err = runSub(t, dsn, "migrate")
	if err != nil {
		t.Fatalf("second migrate failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Schema is up to date.") {
		t.Fatalf("expected an up-to-date schema on rerun:\n%s", out)
	}
}

func TestDBMaintainCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "gridpulse.db")

	if out, err := runSub(t, dsn, "migrate"); err != nil {
		t.Fatalf("migrate failed: %v\noutput:\n%s", err, out)
	}
	out, err := runSub(t, dsn, "db-maintain")
	if err != nil {
		t.Fatalf("db-maintain failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Maintenance complete.") {
		t.Fatalf("missing maintenance output:\n%s", out)
	}
}

func TestCreateTariffsCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "gridpulse.db")

	out, err := runSub(t, dsn, "create-tariffs")
	if err != nil {
		t.Fatalf("create-tariffs failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Created: Standard Rate") {
		t.Fatalf("missing tariff creation output:\n%s", out)
	}
	if !strings.Contains(out, "Created 4 new tariffs") {
		t.Fatalf("missing tariff summary:\n%s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	confHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confHome)
	dsn := filepath.Join(t.TempDir(), "gridpulse.db")

	out, err := runSub(t, dsn, "config-init")
	if err != nil {
		t.Fatalf("config-init failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "Configuration written.") {
		t.Fatalf("missing confirmation output:\n%s", out)
	}

	path := filepath.Join(confHome, "gridpulse", "gridpulse.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), dsn) {
		t.Fatalf("expected the effective DSN in the written config:\n%s", data)
	}
}
