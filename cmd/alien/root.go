package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "alien",
	Short: "alien is a terminal editor for artificial life simulations",
	Long: `alien edits cell clusters, energy particles and tokens of an artificial
life simulation. Simulations, parameters, symbol tables and collections are
stored as files next to each other in the working directory.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default: alien/config.toml in the user config directory)")
	rootCmd.Flags().String("dir", "", "Working directory for file prompts")
	rootCmd.Flags().String("load", "", "Simulation file to open on start")
	rootCmd.Flags().String("log", "alien.log", "Log file")
}
