package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/format/claude"
	"github.com/agentsync/agsync/internal/format/codex"
	"github.com/agentsync/agsync/internal/format/copilot"
)

var (
	configPath string
	logFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "agsync",
	Short: "Sync agent definitions, permissions, and slash commands between tools",
	Long: `agsync keeps coding-assistant configuration in sync across tools that
store it in incompatible formats.

Artifacts are converted through a shared canonical model:

  claude   .md agents with YAML frontmatter, settings.json permissions
  copilot  .agent.md agents, .prompt.md commands, .perm.json approvals
  codex    .toml profiles, plain markdown prompts

A persisted ledger tracks modification times per directory pair, so
repeated runs only move what changed and deletions mirror across.`,
}

// newRegistry assembles every built-in format adapter.
func newRegistry() *format.Registry {
	reg := format.NewRegistry()
	reg.Register(claude.New())
	reg.Register(copilot.New())
	reg.Register(codex.New())
	return reg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.agsync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also log to this rotated file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every per-file decision")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
