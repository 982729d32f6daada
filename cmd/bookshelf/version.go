package main

import (
	"fmt"

	"github.com/aretw0/sluice"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bookshelf (sluice %s)\n", sluice.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
