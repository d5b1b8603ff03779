package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/config"
	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/logging"
	"github.com/agentsync/agsync/internal/state"
	"github.com/agentsync/agsync/internal/sync"
	"github.com/agentsync/agsync/internal/ui"
)

var (
	syncSourceDir    string
	syncTargetDir    string
	syncSourceFormat string
	syncTargetFormat string
	syncConfigType   string
	syncDirection    string
	syncDryRun       bool
	syncForce        bool
	syncStateFile    string
	syncArgHint      bool
	syncHandoffs     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync one artifact kind between two directories",
	Long: `Sync agent, permission, or slash-command files between a source and a
target directory.

Each file is matched by base name, classified against the ledger, and
converted through the canonical model in whichever direction it changed.
Files modified on both sides since the last sync are conflicts: by
default you are prompted per file, --force picks the newer side
(ties go to the source), and non-interactive runs skip them.

Examples:
  agsync sync --source-dir ~/.claude/agents --target-dir .github/agents
  agsync sync --source-dir ~/.claude --target-dir .vscode \
      --config-type permission --dry-run
  agsync sync --source-dir ./prompts --target-dir ./codex-prompts \
      --target-format codex --config-type slash-command \
      --direction source-to-target`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if syncSourceFormat == "" {
			syncSourceFormat = cfg.SourceFormat
		}
		if syncTargetFormat == "" {
			syncTargetFormat = cfg.TargetFormat
		}
		if syncDirection == "" {
			syncDirection = cfg.Direction
		}
		if syncStateFile == "" {
			syncStateFile = cfg.StateFile
		}
		if logFile == "" {
			logFile = cfg.LogFile
		}

		kind, err := canonical.ParseKind(syncConfigType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		direction, err := sync.ParseDirection(syncDirection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		loggers := logging.New(logging.Options{Verbose: verbose, LogFile: logFile})
		store := state.Load(syncStateFile)

		opts := sync.Options{
			SourceDir:    syncSourceDir,
			TargetDir:    syncTargetDir,
			SourceFormat: syncSourceFormat,
			TargetFormat: syncTargetFormat,
			Kind:         kind,
			Direction:    direction,
			DryRun:       syncDryRun,
			Force:        syncForce,
			Convert: format.Options{
				AddArgumentHint: syncArgHint || cfg.AddArgumentHint,
				AddHandoffs:     syncHandoffs || cfg.AddHandoffs,
			},
			Logger: loggers.Progress,
		}
		if !syncForce {
			opts.Resolver = sync.InteractiveResolver{}
		}

		engine, err := sync.New(newRegistry(), store, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		report, err := engine.Run(cmd.Context())
		printReport(report, loggers, syncDryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if report.Stats.Errors > 0 {
			os.Exit(1)
		}
	},
}

func printReport(report *sync.Report, loggers *logging.Loggers, dryRun bool) {
	// Warnings and errors go through the warn logger so a --log-file tee
	// records them alongside the verbose progress lines.
	for _, out := range report.Outcomes {
		for _, w := range out.Warnings {
			loggers.Warn.Printf("warning: %s", w)
		}
		if out.Err != nil {
			loggers.Warn.Printf("error: %s: %v", out.Base, out.Err)
		}
	}

	s := report.Stats
	label := "Sync complete"
	if dryRun {
		label = "Dry run"
	}
	fmt.Printf("%s %s\n", ui.Success("✓"), label)
	fmt.Printf("   To target: %d\n", s.ToTarget)
	fmt.Printf("   To source: %d\n", s.ToSource)
	fmt.Printf("   Deleted:   %d\n", s.Deleted)
	fmt.Printf("   Conflicts: %d\n", s.Conflicts)
	fmt.Printf("   Skipped:   %d\n", s.Skipped)
	if s.Errors > 0 {
		fmt.Printf("   %s    %d\n", ui.Error("Errors:"), s.Errors)
	}
}

func init() {
	syncCmd.Flags().StringVar(&syncSourceDir, "source-dir", "", "source directory (required)")
	syncCmd.Flags().StringVar(&syncTargetDir, "target-dir", "", "target directory (required)")
	syncCmd.Flags().StringVar(&syncSourceFormat, "source-format", "", "source directory format (default from config)")
	syncCmd.Flags().StringVar(&syncTargetFormat, "target-format", "", "target directory format (default from config)")
	syncCmd.Flags().StringVar(&syncConfigType, "config-type", "agent", "artifact kind: agent, permission, or slash-command")
	syncCmd.Flags().StringVar(&syncDirection, "direction", "", "change flow: both, source-to-target, or target-to-source")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "classify and convert but write nothing")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "resolve conflicts automatically: newer side wins, ties go to source")
	syncCmd.Flags().StringVar(&syncStateFile, "state-file", "", "ledger path (default ~/.agsync/state.json)")
	syncCmd.Flags().BoolVar(&syncArgHint, "add-argument-hint", false, "copy descriptions into argument hints where supported")
	syncCmd.Flags().BoolVar(&syncHandoffs, "add-handoffs", false, "emit placeholder handoff blocks where supported")
	syncCmd.MarkFlagRequired("source-dir")
	syncCmd.MarkFlagRequired("target-dir")
	rootCmd.AddCommand(syncCmd)
}
