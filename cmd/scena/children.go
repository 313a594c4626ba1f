package main

import (
	"context"
	"os"

	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/spf13/cobra"
)

var childrenCmd = &cobra.Command{
	Use:   "children [scope]",
	Short: "List the layers and groups inside a scope",
	Long: `Prints, as JSON, the entries directly inside a group scope given as a slash
separated path of group IDs (e.g. "g1/g2"). The root scope is the default.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var scope domain.Scope
		if len(args) > 0 {
			scope = domain.ParseScope(args[0])
		}
		ws, _, err := openWorkspace(context.Background(), readOptions(cmd, nil))
		if err != nil {
			return err
		}
		return writeJSON(os.Stdout, dto.FromEntries(ws.Children(scope)))
	},
}

func init() {
	rootCmd.AddCommand(childrenCmd)
}
