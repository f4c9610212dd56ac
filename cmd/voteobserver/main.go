package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "voteobserver",
	Short: "Poll-observer election-day assignment tool",
	Long: `voteobserver assigns poll observers to precincts for election day: a
greedy pass fills every inside/outside/legal slot by priority order, an
optional Top Trading Cycles pass then reshuffles already-filled slots for
shorter commutes without ever leaving a slot empty.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(assignCmd)
}

// Commands are defined in separate files:
// - assignCmd and its subcommands in assign.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
