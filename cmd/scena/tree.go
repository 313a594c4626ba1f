package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/cli"
	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "Print the layer tree",
	Long: `Prints the layers and groups of the canvas as a nested list.
Output is rendered with colours on a terminal and left as markdown when piped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		watch, _ := cmd.Flags().GetBool("watch")
		opts := readOptions(cmd, args)

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		ws, logger, err := openWorkspace(sigCtx, opts)
		if err != nil {
			return err
		}

		show := func() {
			entries := dto.FromEntries(ws.Children(nil))
			if asJSON {
				if err := writeJSON(os.Stdout, entries); err != nil {
					logger.Error("encode failed", "err", err)
				}
				return
			}
			render := tui.NewRenderer()
			out, err := render(tui.TreeMarkdown(ws.Name, entries))
			if err != nil {
				logger.Error("render failed", "err", err)
				return
			}
			fmt.Print(out)
		}

		show()
		if !watch {
			return nil
		}
		if !asJSON {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(scena.Version))
		}
		if err := cli.WatchReload(sigCtx, ws, logger, show); err != nil {
			return err
		}
		return sigCtx.ExitErr()
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Bool("json", false, "Print the tree as JSON")
	treeCmd.Flags().BoolP("watch", "w", false, "Reprint the tree when the source changes")
}
