package matcher

import (
	"errors"
	"fmt"
)

// ErrMatchTimeout is returned by FindFirst when evaluation exceeds the
// configured match timeout.
var ErrMatchTimeout = errors.New("match timeout")

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// IsPatternError reports whether err (or any error in its chain) is a *PatternError.
func IsPatternError(err error) bool {
	var pe *PatternError
	return errors.As(err, &pe)
}
