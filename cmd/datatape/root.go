package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "datatape",
	Short: "EV5 data tape validation for automotive test records",
	Long: `Datatape validates EV5 flat-file test records against a field-position
schema and the NHTSA valid code catalog.

It provides:
  - Block-structured parsing of EV5 data tapes
  - Schema-driven field and code validation
  - CSV reports of invalid fields, addressable by block/line/column
  - Valid code catalog fetching and spreadsheet-friendly export
  - Watch mode for validating tapes as they arrive`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "datatape.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
