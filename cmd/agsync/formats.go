package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentsync/agsync/internal/canonical"
	"github.com/agentsync/agsync/internal/ui"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered formats and what each supports",
	Run: func(cmd *cobra.Command, args []string) {
		reg := newRegistry()
		kinds := []canonical.Kind{
			canonical.KindAgent,
			canonical.KindPermission,
			canonical.KindSlashCommand,
		}

		for _, name := range reg.Names() {
			adapter, err := reg.Resolve(name)
			if err != nil {
				continue
			}
			fmt.Printf("%s\n", ui.Accent(name))
			for _, kind := range kinds {
				if !adapter.Supports(kind) {
					fmt.Printf("   %-14s %s\n", kind, ui.Muted("not supported"))
					continue
				}
				fmt.Printf("   %-14s *%s\n", kind, adapter.Extension(kind))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
