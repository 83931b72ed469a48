package engine

import (
	"errors"
	"fmt"

	"github.com/praetorian-inc/rgrep/pkg/types"
)

// Kind classifies why a file scan failed.
type Kind int

const (
	// KindIO indicates the file could not be opened or read.
	KindIO Kind = iota + 1
	// KindPattern indicates the pattern failed to compile.
	KindPattern
	// KindTask indicates a per-line evaluation failed unexpectedly.
	KindTask
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindPattern:
		return "pattern"
	case KindTask:
		return "task"
	default:
		return "unknown"
	}
}

// Error is a failed file scan. Path identifies the file; Line is set for
// task failures.
type Error struct {
	Kind Kind
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTask:
		return fmt.Sprintf("matching line %d failed: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsIOError reports whether err is a file open/read failure.
func IsIOError(err error) bool {
	return KindOf(err) == KindIO
}

// IsPatternError reports whether err is a pattern compilation failure.
func IsPatternError(err error) bool {
	return KindOf(err) == KindPattern
}

// IsTaskFailure reports whether err is a failed per-line evaluation.
func IsTaskFailure(err error) bool {
	return KindOf(err) == KindTask
}

// SpanError reports a match span that does not fit its line.
type SpanError struct {
	Span   types.Span
	Length int
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("match span [%d, %d) outside line of %d characters", e.Span.Start, e.Span.End, e.Length)
}
