package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bru-go/bru/parser"
)

// commonParserFlags holds the parser-facing flag values shared by all
// three subcommands.
type commonParserFlags struct {
	onlyCounters      bool
	unboundedCounters bool
	expandCounters    bool
	wholeMatchCapture bool
	logUnsupported    bool
	flagProblematic   bool
}

func addCommonFlags(cmd *cobra.Command, f *commonParserFlags) {
	cmd.Flags().BoolVar(&f.onlyCounters, "only-counters", false, "lower every bounded {m,n} quantifier (including {0,1}) to an explicit Counter node; *, + and ? are unchanged")
	cmd.Flags().BoolVarP(&f.unboundedCounters, "unbounded-counters", "u", true, "lower {m,} to Star/Plus forms instead of decomposing it into Counter(min,min)*Star")
	cmd.Flags().BoolVarP(&f.expandCounters, "expand-counters", "e", false, "expand {m,n} into m..n literal copies instead of a Counter node")
	cmd.Flags().BoolVarP(&f.wholeMatchCapture, "whole-match-capture", "w", false, "wrap the parsed pattern in an implicit group 0 capture")
	cmd.Flags().BoolVar(&f.logUnsupported, "log-unsupported", false, "print the set of unsupported features the parser substituted with Epsilon (printed by the parse subcommand only)")
	cmd.Flags().BoolVar(&f.flagProblematic, "flag-problematic", false, "sets parser.Options.AllowRepeatedNullability; no stage reads it, and no SRE shape is rejected either way")
}

func (f *commonParserFlags) options() parser.Options {
	return parser.Options{
		OnlyCounters:             f.onlyCounters,
		UnboundedCounters:        f.unboundedCounters,
		ExpandCounters:           f.expandCounters,
		WholeMatchCapture:        f.wholeMatchCapture,
		LogUnsupported:           f.logUnsupported,
		AllowRepeatedNullability: f.flagProblematic,
	}
}

func printUnsupported(res parser.Result) {
	names := res.Features.Names()
	if len(names) == 0 {
		return
	}
	fmt.Printf("unsupported features encountered: %s\n", strings.Join(names, ", "))
}
