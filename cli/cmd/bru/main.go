// Command bru is the CLI front end for the regex research pipeline:
// parse/compile/match subcommands over the bru package's Engine.
package main

import (
	"fmt"
	"os"

	"github.com/bru-go/bru/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
