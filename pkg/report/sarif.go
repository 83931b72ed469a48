package report

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/rgrep/pkg/sarif"
	"github.com/praetorian-inc/rgrep/pkg/types"
)

// SARIFWriter collects every record into a single SARIF 2.1.0 document
// written on Close.
type SARIFWriter struct {
	out    io.Writer
	report *sarif.Report
	closed bool
}

// NewSARIFWriter creates a SARIFWriter for a scan of pattern.
func NewSARIFWriter(out io.Writer, pattern string) *SARIFWriter {
	report := sarif.NewReport()
	report.AddPattern(pattern)
	return &SARIFWriter{out: out, report: report}
}

// Write buffers one file's records.
func (w *SARIFWriter) Write(result types.FileResult) error {
	if w.closed {
		return fmt.Errorf("sarif writer is closed")
	}
	w.report.AddFileResult(result)
	return nil
}

// Close writes the report. Subsequent calls do nothing.
func (w *SARIFWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	data, err := w.report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding sarif report: %w", err)
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing sarif report: %w", err)
	}
	return nil
}
