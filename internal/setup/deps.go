// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package setup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gridpulse/gridpulse/internal/logging"
)

// Manifest declares the system packages the application platform needs
// before it can run (database client libraries, report tooling, etc.).
type Manifest struct {
	// Installer is the command the packages are handed to, e.g.
	// "apt-get install -y". Split on whitespace.
	Installer string `yaml:"installer"`
	// Packages are appended to the installer command line.
	Packages []string `yaml:"packages"`
}

// LoadManifest reads and parses a dependency manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse dependency manifest %s: %w", path, err)
	}
	if len(strings.Fields(m.Installer)) == 0 {
		return nil, fmt.Errorf("dependency manifest %s does not name an installer", path)
	}
	return &m, nil
}

// InstallDependencies runs the installer named by the manifest with the
// declared packages. The installer's stdout/stderr stream through to the
// user; a non-zero installer exit fails the sequence with that exit code.
// A manifest with no packages is a no-op.
func InstallDependencies(ctx context.Context, manifestPath string) error {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	if len(m.Packages) == 0 {
		logging.Infof("setup: dependency manifest lists no packages, nothing to install")
		return nil
	}

	parts := strings.Fields(m.Installer)
	args := append(parts[1:], m.Packages...)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.Debugf("setup: running installer: %s %s", parts[0], strings.Join(args, " "))
	return cmd.Run()
}
