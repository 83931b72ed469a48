package matcher

import (
	"time"

	"github.com/praetorian-inc/rgrep/pkg/types"
)

// Matcher compiles user-supplied search patterns.
type Matcher interface {
	// Compile parses pattern. Invalid syntax returns a *PatternError.
	Compile(pattern string) (Pattern, error)
}

// Pattern is a compiled search pattern.
// Implementations must be safe for concurrent use by multiple goroutines.
type Pattern interface {
	// FindFirst returns the character span of the leftmost match in text.
	// The bool is false when text does not match.
	FindFirst(text string) (types.Span, bool, error)

	// String returns the source pattern.
	String() string
}

// Config for matcher initialization.
type Config struct {
	// MatchTimeout bounds a single line evaluation (0 = DefaultMatchTimeout).
	MatchTimeout time.Duration
}

// New creates the default regexp2-backed Matcher.
func New(cfg Config) Matcher {
	return NewRegexp(cfg.MatchTimeout)
}
