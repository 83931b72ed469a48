package report

import (
	"encoding/json"
	"io"

	"github.com/praetorian-inc/rgrep/pkg/types"
)

// JSONWriter emits one JSON object per file with matches, one per line.
type JSONWriter struct {
	encoder *json.Encoder
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(out io.Writer) *JSONWriter {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	return &JSONWriter{encoder: encoder}
}

// Write encodes one file's records.
func (w *JSONWriter) Write(result types.FileResult) error {
	if result.Empty() {
		return nil
	}
	return w.encoder.Encode(result)
}

// Close implements Writer.
func (w *JSONWriter) Close() error {
	return nil
}
