// Package report renders scan results for humans and machines.
package report

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/rgrep/pkg/types"
)

// Output formats.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Writer receives the results of one scan, a file at a time.
type Writer interface {
	// Write renders one file's records. Files without records may be skipped.
	Write(result types.FileResult) error

	// Close flushes anything the writer buffered.
	Close() error
}

// Options configures a Writer.
type Options struct {
	// Color enables ANSI styling in human output.
	Color bool

	// ShowPath prints a header line naming each file before its records.
	ShowPath bool

	// Pattern is recorded as the rule of SARIF reports.
	Pattern string
}

// New creates a Writer for the named format.
func New(format string, out io.Writer, opts Options) (Writer, error) {
	switch format {
	case FormatHuman, "":
		return NewHumanWriter(out, opts), nil
	case FormatJSON:
		return NewJSONWriter(out), nil
	case FormatSARIF:
		return NewSARIFWriter(out, opts.Pattern), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
