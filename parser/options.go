package parser

// Options configures a single parse.
type Options struct {
	// OnlyCounters lowers every bounded {m,n} quantifier to
	// Counter(min,max), including {0,1}, which otherwise becomes Ques.
	// The *, + and ? quantifiers and an unbounded {m,} are not affected:
	// they still become Star/Plus/Ques (there is no unbounded Counter).
	OnlyCounters bool

	// UnboundedCounters, when false, lowers an unbounded upper bound with
	// a bounded lower bound as Counter(min,min)·Star; when true, {0,}
	// becomes Star, {1,} becomes Plus and {m,} becomes m-1 copies
	// followed by a Plus. No unbounded Counter node is emitted either way.
	UnboundedCounters bool

	// ExpandCounters lowers E{m,n} to m copies of E followed by n-m
	// nested optional copies, instead of a Counter node.
	ExpandCounters bool

	// WholeMatchCapture wraps the parsed root in Capture(0, ·).
	WholeMatchCapture bool

	// LogUnsupported is not read by Parse: unsupported features are
	// always collected in Result.Features. The CLI's parse subcommand
	// prints them (cli/parse.go) when its own --log-unsupported flag is
	// set.
	LogUnsupported bool

	// AllowRepeatedNullability is carried through from the CLI's
	// --flag-problematic flag but is not read by the parser or either
	// construction: no SRE shape is rejected for a nullable repeated body
	// whether it is set or not (construct/thompson and construct/glushkov
	// always install the epsilon-loop guard).
	AllowRepeatedNullability bool
}

// DefaultOptions returns the conventional PCRE-flavoured defaults: named
// quantifier kinds (not OnlyCounters), unbounded counters allowed, no
// counter expansion, no implicit whole-match capture.
func DefaultOptions() Options {
	return Options{
		UnboundedCounters: true,
	}
}
