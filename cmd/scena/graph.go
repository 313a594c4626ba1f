package main

import (
	"context"
	"fmt"

	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [dir]",
	Short: "Export the group tree visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the canvas: groups as subgraphs and
layers as nodes in paint order. --select highlights a selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, _ := cmd.Flags().GetStringSlice("select")
		focus, _ := cmd.Flags().GetString("focus")

		ws, _, err := openWorkspace(context.Background(), readOptions(cmd, args))
		if err != nil {
			return err
		}

		var overlay *graph.SelectionOverlay
		if len(selected) > 0 || focus != "" {
			overlay = &graph.SelectionOverlay{Selected: selected, Focus: focus}
		}
		fmt.Print(graph.GenerateMermaid(dto.FromEntries(ws.Children(nil)), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("select", nil, "Layer or group IDs to highlight")
	graphCmd.Flags().String("focus", "", "Layer ID to mark as focused")
}
