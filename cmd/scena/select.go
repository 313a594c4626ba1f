package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Apply a selection gesture",
	Long: `Applies a gesture to a selection and prints the resulting selection as JSON.

  scena select --click --added B,C                      # click: completed groups
  scena select --click --meta --added B                 # meta click: single layers
  scena select --added C --selected '[{"element":"A"}]' # marquee update
  scena select --drill C --selected '[{"group":"g1"}]'  # double click`,
	RunE: func(cmd *cobra.Command, args []string) error {
		added, _ := cmd.Flags().GetStringSlice("added")
		removed, _ := cmd.Flags().GetStringSlice("removed")
		rawSelected, _ := cmd.Flags().GetString("selected")
		drill, _ := cmd.Flags().GetString("drill")
		click, _ := cmd.Flags().GetBool("click")
		dragStart, _ := cmd.Flags().GetBool("drag-start")
		meta, _ := cmd.Flags().GetBool("meta")
		shift, _ := cmd.Flags().GetBool("shift")

		var wire []dto.Target
		if rawSelected != "" {
			if err := json.Unmarshal([]byte(rawSelected), &wire); err != nil {
				return fmt.Errorf("error parsing --selected JSON: %w", err)
			}
		}

		ctx := context.Background()
		ws, _, err := openWorkspace(ctx, readOptions(cmd, nil))
		if err != nil {
			return err
		}
		current := dto.ToTargets(wire)

		if drill != "" {
			return writeJSON(os.Stdout, dto.NewSelectResponse(domain.ModeSub, ws.Drill(ctx, current, drill), nil))
		}

		g := domain.Gesture{
			Added:       added,
			Removed:     removed,
			IsClick:     click,
			IsDragStart: dragStart,
			Meta:        meta,
			Shift:       shift,
		}
		sel, err := ws.Select(ctx, current, g)
		// A mixed depth selection still yields a usable result; it is
		// reported as a warning in the response.
		return writeJSON(os.Stdout, dto.NewSelectResponse(g.Mode(), sel, err))
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringSlice("added", nil, "Layer IDs newly covered by the gesture")
	selectCmd.Flags().StringSlice("removed", nil, "Layer IDs no longer covered by the gesture")
	selectCmd.Flags().String("selected", "", "Current selection as JSON")
	selectCmd.Flags().String("drill", "", "Double click target layer ID")
	selectCmd.Flags().Bool("click", false, "The gesture is a click")
	selectCmd.Flags().Bool("drag-start", false, "The gesture starts a drag")
	selectCmd.Flags().Bool("meta", false, "Meta modifier held")
	selectCmd.Flags().Bool("shift", false, "Shift modifier held")
}
