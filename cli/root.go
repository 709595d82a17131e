// Package cli wires the bru command-line tool: parse/compile/match
// subcommands over the same Engine pipeline the library package exposes,
// built with cobra the way the rest of the pack's CLI tools are.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "bru",
	Short:         "bru inspects and runs the regex research pipeline",
	Long:          "bru parses, compiles, and runs regular expressions through a configurable parser -> construction -> SMIR -> bytecode -> VM pipeline, exposing every stage's knobs as flags.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the bru CLI, returning any error from the selected
// subcommand.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(parseCmd, compileCmd, matchCmd)
}
