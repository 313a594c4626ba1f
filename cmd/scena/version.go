package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/scena"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scena",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scena version %s\n", strings.TrimSpace(scena.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
