package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/format"
	"github.com/agentsync/agsync/internal/sync"
	"github.com/agentsync/agsync/internal/ui"
)

var (
	convertFile    string
	convertFrom    string
	convertTo      string
	convertType    string
	convertOutput  string
	convertArgHint bool
	convertHandoff bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single file between formats",
	Long: `Convert one file to another format without touching any ledger.

The source format is detected from the file name unless --source-format
is given. The result goes to --output, or to stdout when no output path
is set.

Examples:
  agsync convert --file ~/.claude/agents/reviewer.md --target-format copilot
  agsync convert --file reviewer.agent.md --target-format codex \
      --output profiles/reviewer.toml`,
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := canonical.ParseKind(convertType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		res, err := sync.ConvertFile(newRegistry(), sync.ConvertRequest{
			Path:   convertFile,
			From:   convertFrom,
			To:     convertTo,
			Kind:   kind,
			Output: convertOutput,
			Options: format.Options{
				AddArgumentHint: convertArgHint,
				AddHandoffs:     convertHandoff,
			},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Warnings go to stderr so piped stdout stays clean.
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "%s %s\n", ui.Warn("⚠"), w)
		}

		if res.OutputPath == "" {
			os.Stdout.Write(res.Data)
			return
		}
		fmt.Printf("%s Wrote %s\n", ui.Success("✓"), ui.Accent(res.OutputPath))
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFile, "file", "", "input file (required)")
	convertCmd.Flags().StringVar(&convertFrom, "source-format", "", "source format (default: detect from file name)")
	convertCmd.Flags().StringVar(&convertTo, "target-format", "", "target format (required)")
	convertCmd.Flags().StringVar(&convertType, "config-type", "agent", "artifact kind: agent, permission, or slash-command")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output path (default: stdout)")
	convertCmd.Flags().BoolVar(&convertArgHint, "add-argument-hint", false, "copy descriptions into argument hints where supported")
	convertCmd.Flags().BoolVar(&convertHandoff, "add-handoffs", false, "emit placeholder handoff blocks where supported")
	convertCmd.MarkFlagRequired("file")
	convertCmd.MarkFlagRequired("target-format")
	rootCmd.AddCommand(convertCmd)
}
