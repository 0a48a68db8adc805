// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the tool configuration from flags, environment
// variables and yaml config files, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DatabaseConfig holds the connection settings for the application store.
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

// SeedConfig controls the sample-data generator.
type SeedConfig struct {
	Days  int  `mapstructure:"days" yaml:"days"`
	Clear bool `mapstructure:"clear" yaml:"clear"`
}

// DepsConfig points the dependency-install step at its manifest.
type DepsConfig struct {
	Manifest string `mapstructure:"manifest" yaml:"manifest"`
}

// Config is the root configuration for the setup tool.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Seed     SeedConfig     `mapstructure:"seed" yaml:"seed"`
	Deps     DepsConfig     `mapstructure:"deps" yaml:"deps"`
}

// Defaults returns the built-in defaults applied before any config
// file, environment variable or flag is consulted.
func Defaults() map[string]any {
	return map[string]any{
		"database.type": "sqlite",
		"database.dsn":  "./gridpulse.db",
		"seed.days":     7,
		"seed.clear":    false,
		"deps.manifest": "./deps.yaml",
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "GridPulse")
		default: // Linux, macOS, etc.
			configDir = "/etc/gridpulse"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "gridpulse")
	}

	return filepath.Join(configDir, "gridpulse.yaml"), nil
}

// LoadConfig builds the configuration for a command invocation. Precedence,
// highest first: command-line flags, GRIDPULSE_* environment variables, an
// explicit --config file, gridpulse.yaml in the standard locations, defaults.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("gridpulse")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest precedence for file-based
	// configuration.
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; the tool runs on defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("gridpulse")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as yaml to the user or
// system config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600 since the DSN may contain credentials.
	return os.WriteFile(path, data, 0600)
}
