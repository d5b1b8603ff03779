// Package config loads tool configuration from a YAML file with
// environment variable overrides.
//
// Resolution order, later wins: built-in defaults, then the config file
// (~/.agsync/config.yaml unless an explicit path is given), then
// AGSYNC_* environment variables. Flags override all of these at the
// command layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the persistent settings of the tool. Every field can
// also be set per-invocation through flags.
type Config struct {
	// StateFile is where the sync ledger lives.
	StateFile string `mapstructure:"state_file"`

	// LogFile, when set, receives rotated log output in addition to
	// stderr.
	LogFile string `mapstructure:"log_file"`

	// SourceFormat and TargetFormat are the default formats for sync
	// runs that do not name them explicitly.
	SourceFormat string `mapstructure:"source_format"`
	TargetFormat string `mapstructure:"target_format"`

	// Direction is the default change-flow restriction.
	Direction string `mapstructure:"direction"`

	// AddArgumentHint copies an agent description into the argument
	// hint field of formats that display one.
	AddArgumentHint bool `mapstructure:"add_argument_hint"`

	// AddHandoffs emits a placeholder handoff block in formats that
	// support agent-to-agent handoffs.
	AddHandoffs bool `mapstructure:"add_handoffs"`
}

// DefaultStatePath returns ~/.agsync/state.json, falling back to a
// relative path when the home directory is unknown.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agsync/state.json"
	}
	return filepath.Join(home, ".agsync", "state.json")
}

// DefaultConfigPath returns ~/.agsync/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agsync/config.yaml"
	}
	return filepath.Join(home, ".agsync", "config.yaml")
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields the defaults; a malformed file
// is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("state_file", DefaultStatePath())
	v.SetDefault("log_file", "")
	v.SetDefault("source_format", "claude")
	v.SetDefault("target_format", "copilot")
	v.SetDefault("direction", "both")
	v.SetDefault("add_argument_hint", false)
	v.SetDefault("add_handoffs", false)

	v.SetEnvPrefix("AGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || os.IsNotExist(err)
		if !missing || explicit {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}
