package money

import (
	"sync/atomic"
)

// Parser is the capability interface for turning free-text input into an
// amount.
// The package holds a single process-wide parser, configurable once at
// startup with [SetParser]; [Parse] delegates to it.
type Parser interface {
	Parse(s string) (Amount, error)
}

// ParserFunc adapts an ordinary function to the [Parser] interface.
type ParserFunc func(s string) (Amount, error)

// Parse calls f(s).
func (f ParserFunc) Parse(s string) (Amount, error) {
	return f(s)
}

// activeParser holds the configured parser.
// The pointer is atomic so a late SetParser cannot race in-flight Parse
// calls, but the intended contract is still configure once at startup.
var activeParser atomic.Pointer[Parser]

// SetParser configures the process-wide parser used by [Parse].
// It is meant to be called once during process initialization; the default
// is the built-in [ParseAmount].
// SetParser panics if p is nil.
func SetParser(p Parser) {
	if p == nil {
		panic("SetParser(nil)")
	}
	activeParser.Store(&p)
}

// Parse converts free-text input to an amount by delegating to the parser
// configured with [SetParser], or to [ParseAmount] if none is configured.
// Errors from the configured parser are returned as-is; the parser owns
// its own error context.
func Parse(s string) (Amount, error) {
	if p := activeParser.Load(); p != nil {
		return (*p).Parse(s)
	}
	return ParseAmount(s)
}
