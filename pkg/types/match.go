package types

// MatchRecord is the first match of a pattern within one line of a file.
//
// MatchStart and MatchEnd are character (rune) indices into Content; Offset
// holds the same occurrence in bytes.
type MatchRecord struct {
	Content    string     `json:"content"`
	LineNumber int        `json:"line_number"` // 1-based position in the file
	MatchStart int        `json:"match_start"`
	MatchEnd   int        `json:"match_end"`
	Offset     OffsetSpan `json:"offset"`
}

// NewMatchRecord builds a record for a line matched at the given character span.
func NewMatchRecord(lineNumber int, content string, span Span) *MatchRecord {
	return &MatchRecord{
		Content:    content,
		LineNumber: lineNumber,
		MatchStart: span.Start,
		MatchEnd:   span.End,
		Offset:     ByteSpan(content, span),
	}
}

// Span returns the character span of the match.
func (r *MatchRecord) Span() Span {
	return Span{Start: r.MatchStart, End: r.MatchEnd}
}

// Snippet splits the line around the match for rendering.
func (r *MatchRecord) Snippet() Snippet {
	before, matching, after := Split(r.Content, r.Span())
	return Snippet{Before: before, Matching: matching, After: after}
}

// FileResult holds the ordered records found in a single file.
type FileResult struct {
	Path    string         `json:"path"`
	Records []*MatchRecord `json:"matches"`
}

// Empty reports whether the file produced no matches.
func (f FileResult) Empty() bool {
	return len(f.Records) == 0
}
