package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bru-go/bru/parser"
	"github.com/bru-go/bru/sre"
)

var parseFlags commonParserFlags

var parseCmd = &cobra.Command{
	Use:   "parse <regex>",
	Short: "parse a pattern and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := parseFlags.options()
		root, res := parser.Parse(args[0], opts)
		if res.Code != parser.Success && res.Code != parser.Unsupported {
			return &res
		}
		fmt.Println(sre.Print(root))
		if parseFlags.logUnsupported {
			printUnsupported(res)
		}
		return nil
	},
}

func init() {
	addCommonFlags(parseCmd, &parseFlags)
}
