package main

import (
	"fmt"

	"github.com/pysugar/oura-scraper/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "oura-scraper", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
