package types

// OffsetSpan is byte range [Start, End) - half-open interval.
type OffsetSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Span is a character (rune) range [Start, End) - half-open interval.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Within reports whether the span is well formed and fits inside text,
// measured in characters.
func (s Span) Within(text string) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= RuneCount(text)
}
