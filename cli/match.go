package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bru-go/bru"
	"github.com/bru-go/bru/vm"
)

var matchFlags = struct {
	common    commonParserFlags
	scheduler string
	benchmark bool
}{}

var matchCmd = &cobra.Command{
	Use:   "match <regex> <input>",
	Short: "run a pattern against input and print every match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := bru.DefaultEngineOptions()
		opts.Parser = matchFlags.common.options()

		switch matchFlags.scheduler {
		case "spencer", "":
			opts.Scheduler = bru.Spencer
		case "lockstep", "thompson":
			opts.Scheduler = bru.Lockstep
		default:
			return fmt.Errorf("bru: unknown scheduler %q (want spencer|lockstep|thompson)", matchFlags.scheduler)
		}

		eng, err := bru.NewEngine(args[0], opts)
		if err != nil {
			return err
		}

		input := []byte(args[1])
		matches := eng.FindAll(input)
		printMatches(input, matches)

		if matchFlags.benchmark {
			runBenchmark(eng, input)
		}
		return nil
	},
}

func printMatches(input []byte, matches []*vm.Match) {
	if len(matches) == 0 {
		fmt.Println("no match")
		return
	}
	for i, m := range matches {
		fmt.Printf("match %d: [%d,%d) = %q\n", i, m.Start, m.End, input[m.Start:m.End])
		for g := 1; 2*g < len(m.Captures); g++ {
			s, e := m.Group(g)
			if s < 0 || e < 0 {
				fmt.Printf("  group %d: not captured\n", g)
				continue
			}
			fmt.Printf("  group %d: %q\n", g, input[s:e])
		}
	}
}

// runBenchmark times repeated FindAll runs the way a quick micro-benchmark
// would, without the overhead of the testing package's harness.
func runBenchmark(eng *bru.Engine, input []byte) {
	const rounds = 1000
	start := time.Now()
	for i := 0; i < rounds; i++ {
		eng.FindAll(input)
	}
	elapsed := time.Since(start)
	fmt.Printf("benchmark: %d runs in %s (%s/run)\n", rounds, elapsed, elapsed/rounds)
}

func init() {
	addCommonFlags(matchCmd, &matchFlags.common)
	matchCmd.Flags().StringVarP(&matchFlags.scheduler, "scheduler", "s", "spencer", "thread-manager scheduler: spencer|lockstep|thompson (thompson is an alias for lockstep)")
	matchCmd.Flags().BoolVarP(&matchFlags.benchmark, "benchmark", "b", false, "time repeated runs of the match after printing results")
}
