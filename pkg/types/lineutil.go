package types

import "unicode/utf8"

// RuneCount returns the length of s in characters.
// Invalid UTF-8 bytes count as one character each, the same way the
// regex engine decodes them.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ByteSpan converts a character span within s into the equivalent byte span.
// Out-of-range bounds are clamped to the string.
func ByteSpan(s string, span Span) OffsetSpan {
	start, end := clampRune(span.Start), clampRune(span.End)
	if end < start {
		end = start
	}

	offset := OffsetSpan{Start: len(s), End: len(s)}
	n := 0
	for i := range s {
		if n == start {
			offset.Start = i
		}
		if n == end {
			offset.End = i
			break
		}
		n++
	}
	return offset
}

// Split cuts s into the text before, inside and after a character span.
func Split(s string, span Span) (before, matching, after string) {
	offset := ByteSpan(s, span)
	return s[:offset.Start], s[offset.Start:offset.End], s[offset.End:]
}

func clampRune(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
