package report

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/rgrep/pkg/types"
)

// HumanWriter prints one line per record:
//
//	<line_number>:<match_start> <content>
//
// with the numbers in blue and the matched text highlighted.
type HumanWriter struct {
	out      io.Writer
	styles   *styles
	showPath bool
}

// NewHumanWriter creates a HumanWriter.
func NewHumanWriter(out io.Writer, opts Options) *HumanWriter {
	return &HumanWriter{
		out:      out,
		styles:   newStyles(opts.Color),
		showPath: opts.ShowPath,
	}
}

// Write prints the records of one file. Files without records print nothing.
func (w *HumanWriter) Write(result types.FileResult) error {
	if result.Empty() {
		return nil
	}

	if w.showPath {
		if _, err := fmt.Fprintln(w.out, w.styles.path.Sprint(result.Path)); err != nil {
			return err
		}
	}

	for _, record := range result.Records {
		snippet := record.Snippet()
		_, err := fmt.Fprintf(w.out, "%s:%s %s%s%s\n",
			w.styles.lineNumber.Sprint(record.LineNumber),
			w.styles.lineNumber.Sprint(record.MatchStart),
			snippet.Before,
			w.styles.match.Sprint(snippet.Matching),
			snippet.After)
		if err != nil {
			return err
		}
	}

	return nil
}

// Close implements Writer.
func (w *HumanWriter) Close() error {
	return nil
}

// ErrorLine prints a per-file failure as "Err at <path>: <err>" with the
// path highlighted.
func ErrorLine(out io.Writer, path string, err error, colored bool) {
	s := newStyles(colored)
	fmt.Fprintf(out, "Err at %s: %v\n", s.errPath.Sprint(path), err)
}
