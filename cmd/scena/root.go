package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scena",
	Short: "Scena resolves layer selections over nested groups",
	Long: `Scena loads a canvas of layers organised in nested groups and answers the
selection questions an editor asks: what a click selects, what a marquee
selects, and what a double click drills into.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			fmt.Fprintf(os.Stderr, "\n%v\n", exit)
			os.Exit(exit.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the layer documents")
	rootCmd.PersistentFlags().String("file", "", "Single YAML layer document (overrides --dir)")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL of the document store (overrides --file and --dir)")
	rootCmd.PersistentFlags().String("doc", cli.DefaultDocID, "Document id inside the Redis store")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// readOptions collects the workspace flags. A positional argument stands in
// for --dir when the flag is not set.
func readOptions(cmd *cobra.Command, args []string) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	file, _ := cmd.Flags().GetString("file")
	redisURL, _ := cmd.Flags().GetString("redis")
	docID, _ := cmd.Flags().GetString("doc")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{Dir: dir, File: file, RedisURL: redisURL, DocID: docID, Debug: debug}
}

func openWorkspace(ctx context.Context, opts cli.Options) (*scena.Workspace, *slog.Logger, error) {
	logger := cli.CreateLogger(opts.Debug)
	ws, err := cli.NewWorkspace(ctx, opts, logger)
	if err != nil {
		return nil, nil, err
	}
	return ws, logger, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
