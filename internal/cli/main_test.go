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

	"github.com/spf13/cobra"

	"github.com/gridpulse/gridpulse/internal/setup"
)

func TestApplyDefaultFlags_AddsFlags(t *testing.T) {
	cmd := &cobra.Command{}
	applyDefaultFlags(cmd)

	if cmd.Flags().Lookup("database.type") == nil {
		t.Fatalf("database.type flag not present")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		t.Fatalf("database.dsn flag not present")
	}

	// Applying twice must not panic on duplicate definitions.
	applyDefaultFlags(cmd)
}

func TestGetConfigPathFromCli_FlagNotSet(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil path when flag not set, got %v", *p)
	}
}

func TestGetConfigPathFromCli_WithValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridpulse.yaml")
	if err := os.WriteFile(path, []byte("database:\n  type: sqlite\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	p, err := getConfigPathFromCli(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || *p != path {
		t.Fatalf("expected %q, got %v", path, p)
	}
}

func TestGetConfigPathFromCli_MissingFile(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "config file")
	if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if _, err := getConfigPathFromCli(cmd); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

// runRoot executes a fresh root command against a temp sqlite database
// and returns the combined output.
func runRoot(t *testing.T, extraArgs ...string) (string, error) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "gridpulse.db")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	args := append([]string{"--database.type", "sqlite", "--database.dsn", dsn}, extraArgs...)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRunFullSequenceSqlite(t *testing.T) {
	t.Setenv("CREATE_SUPERUSER", "")
	t.Setenv("GRIDPULSE_SEED_DAYS", "1")

	out, err := runRoot(t)
	if err != nil {
		t.Fatalf("full sequence failed: %v\noutput:\n%s", err, out)
	}

	if !strings.Contains(out, "Setup complete!") {
		t.Fatalf("missing completion message:\n%s", out)
	}
	if !strings.Contains(out, "pending: 000001_initial_schema") {
		t.Fatalf("missing migration plan output:\n%s", out)
	}
	if strings.Contains(out, "Create superuser") {
		t.Fatalf("superuser step ran despite CREATE_SUPERUSER being empty:\n%s", out)
	}
	if !strings.Contains(out, "Sample data generation complete!") {
		t.Fatalf("missing seeding output:\n%s", out)
	}
}

func TestRunFullSequenceCreatesSuperuser(t *testing.T) {
	t.Setenv("CREATE_SUPERUSER", "1")
	t.Setenv("GRIDPULSE_ADMIN_USERNAME", "gridadmin")
	t.Setenv("GRIDPULSE_ADMIN_PASSWORD", "s3cret")
	t.Setenv("GRIDPULSE_SEED_DAYS", "1")

	out, err := runRoot(t)
	if err != nil {
		t.Fatalf("full sequence failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, `created superuser "gridadmin"`) {
		t.Fatalf("missing superuser creation output:\n%s", out)
	}
}

func TestRunSequenceSkipsInstallWithoutManifest(t *testing.T) {
	t.Setenv("CREATE_SUPERUSER", "")
	t.Setenv("GRIDPULSE_SEED_DAYS", "1")

	manifest := filepath.Join(t.TempDir(), "nope.yaml")
	out, err := runRoot(t, "--deps.manifest", manifest)
	if err != nil {
		t.Fatalf("expected a missing manifest to be skipped, got: %v\noutput:\n%s", err, out)
	}
	if strings.Contains(out, "Install dependencies") {
		t.Fatalf("install step ran without a manifest:\n%s", out)
	}
	if !strings.Contains(out, "Setup complete!") {
		t.Fatalf("missing completion message:\n%s", out)
	}
}

func TestRunSequenceInstallerFailureStopsRun(t *testing.T) {
	t.Setenv("CREATE_SUPERUSER", "")

	dir := t.TempDir()
	script := filepath.Join(dir, "installer.sh")
	if err := os.WriteFile(script, []byte("exit 3\n"), 0755); err != nil {
		t.Fatalf("failed to write installer script: %v", err)
	}
	manifest := filepath.Join(dir, "deps.yaml")
	if err := os.WriteFile(manifest, []byte("installer: sh\npackages:\n  - "+script+"\n"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	out, err := runRoot(t, "--deps.manifest", manifest)
	if err == nil {
		t.Fatalf("expected the installer failure to abort the run:\n%s", out)
	}
	if got := setup.ExitCode(err); got != 3 {
		t.Fatalf("expected exit code 3 from the installer, got %d", got)
	}
	if strings.Contains(out, "Setup complete!") {
		t.Fatalf("completion message printed despite failure:\n%s", out)
	}
	if strings.Contains(out, "Plan schema migrations") {
		t.Fatalf("later steps ran after the installer failed:\n%s", out)
	}
}

func TestVersionSet(t *testing.T) {
	prev := version
	defer func() { version = prev }()

	SetVersion("v1.2.3")
	if version != "v1.2.3" {
		t.Fatalf("expected version to be recorded, got %q", version)
	}
	SetVersion("")
	if version != "v1.2.3" {
		t.Fatalf("empty version must not clobber the recorded one, got %q", version)
	}
}
