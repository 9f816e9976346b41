package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of soundtracker",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "soundtracker version %s\n", soundtracker.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
