package main

import (
	"context"
	"fmt"

	"github.com/aretw0/scena/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate the layer document",
	Long: `Checks layer ids and scope paths. Errors (duplicate ids, group ids that are
also layer ids, groups reached from two parents) fail the command; stale group
metadata is reported as a warning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ws, _, err := openWorkspace(ctx, readOptions(cmd, args))
		if err != nil {
			return err
		}
		doc, err := ws.Source().Load(ctx)
		if err != nil {
			return err
		}

		report := validator.ValidateDocument(doc)
		for _, w := range report.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			return err
		}
		fmt.Printf("✓ %d layers, %d groups\n", len(doc.Layers), len(ws.Document().Groups))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
