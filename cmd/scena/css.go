package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/scena"
	"github.com/spf13/cobra"
)

var cssCmd = &cobra.Command{
	Use:   "css <layer> [declarations]",
	Short: "Read or update the style of a layer",
	Long: `Without declarations, prints the layer's CSS properties as JSON.
With declarations (e.g. "opacity: 0.5; transform: translate(10px, 0)"), applies
them and commits the document when the source has a store (--file *.yaml or --redis).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ws, _, err := openWorkspace(ctx, readOptions(cmd, nil))
		if err != nil {
			return err
		}
		id := args[0]

		if len(args) == 2 {
			if err := ws.SetCSS(id, args[1]); err != nil {
				return err
			}
			if err := ws.Commit(ctx); err != nil {
				if !errors.Is(err, scena.ErrNoStore) {
					return err
				}
				fmt.Fprintln(os.Stderr, "warning: source is read-only, change not saved")
			}
		}

		css, err := ws.CSS(id)
		if err != nil {
			return err
		}
		return writeJSON(os.Stdout, css)
	},
}

func init() {
	rootCmd.AddCommand(cssCmd)
}
