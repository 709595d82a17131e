package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bru-go/bru"
	"github.com/bru-go/bru/compiler"
	"github.com/bru-go/bru/construct/thompson"
	"github.com/bru-go/bru/transform"
)

var compileFlags = struct {
	common         commonParserFlags
	construction   string
	onlyStdSplit   bool
	captureSem     string
	memo           string
	markStates     bool
	encodePriority bool
}{}

var compileCmd = &cobra.Command{
	Use:   "compile <regex>",
	Short: "compile a pattern and print its bytecode listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := bru.DefaultEngineOptions()
		opts.Parser = compileFlags.common.options()

		switch compileFlags.construction {
		case "glushkov":
			opts.Construction = bru.Glushkov
		case "flat":
			opts.Construction = bru.Thompson
			opts.Flatten = true
		case "thompson", "":
			opts.Construction = bru.Thompson
		default:
			return fmt.Errorf("bru: unknown construction %q (want thompson|glushkov|flat)", compileFlags.construction)
		}

		switch compileFlags.captureSem {
		case "re2":
			opts.Captures = thompson.RE2
		case "pcre", "":
			opts.Captures = thompson.PCRE
		default:
			return fmt.Errorf("bru: unknown capture semantics %q (want pcre|re2)", compileFlags.captureSem)
		}

		switch compileFlags.memo {
		case "none", "":
			opts.Memo = transform.MemoNone
		case "in":
			opts.Memo = transform.MemoIN
		case "cn":
			opts.Memo = transform.MemoCN
		case "iar":
			opts.Memo = transform.MemoIAR
		default:
			return fmt.Errorf("bru: unknown memoisation policy %q (want none|cn|in|iar)", compileFlags.memo)
		}

		opts.PathEncode = compileFlags.encodePriority
		opts.Compiler = compiler.Options{
			OnlyStdSplit: compileFlags.onlyStdSplit,
			MarkStates:   compileFlags.markStates,
		}

		eng, err := bru.NewEngine(args[0], opts)
		if err != nil {
			return err
		}
		fmt.Print(eng.Disassemble())
		return nil
	},
}

func init() {
	addCommonFlags(compileCmd, &compileFlags.common)
	compileCmd.Flags().StringVarP(&compileFlags.construction, "construction", "c", "thompson", "SMIR construction: thompson|glushkov|flat")
	compileCmd.Flags().BoolVar(&compileFlags.onlyStdSplit, "only-std-split", false, "lower every multi-way branch to binary splits instead of a single n-way tswitch")
	compileCmd.Flags().StringVar(&compileFlags.captureSem, "capture-semantics", "pcre", "Thompson capture/epsilon-loop placement: pcre|re2")
	compileCmd.Flags().StringVarP(&compileFlags.memo, "memo", "m", "none", "memoisation policy: none|cn|in|iar")
	compileCmd.Flags().BoolVar(&compileFlags.markStates, "mark-states", false, "emit a state instruction marking every compiled state's body boundary")
	compileCmd.Flags().BoolVar(&compileFlags.encodePriority, "encode-priorities", false, "run the path-encoding transform before compiling")
}
