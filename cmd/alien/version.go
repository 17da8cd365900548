package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of alien",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("alien version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
