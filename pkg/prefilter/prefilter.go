package prefilter

import (
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"
	"github.com/praetorian-inc/rgrep/pkg/matcher"
)

// Prefilter uses Aho-Corasick to reject lines that cannot contain a
// literal pattern before the regex engine sees them.
// A nil *Prefilter lets every line through.
type Prefilter struct {
	matcher *ahocorasick.Matcher
	keyword string
}

// New creates a prefilter for a keyword. Returns nil for an empty keyword.
func New(keyword string) *Prefilter {
	if keyword == "" {
		return nil
	}
	return &Prefilter{
		matcher: ahocorasick.NewStringMatcher([]string{keyword}),
		keyword: keyword,
	}
}

// ForPattern returns a prefilter when pattern is a plain literal, nil otherwise.
func ForPattern(pattern string) *Prefilter {
	if !matcher.IsLiteral(pattern) {
		return nil
	}
	return New(pattern)
}

// Keyword returns the literal the prefilter looks for.
func (pf *Prefilter) Keyword() string {
	if pf == nil {
		return ""
	}
	return pf.keyword
}

// MayMatch reports whether line contains the keyword.
// Lines with invalid UTF-8 always pass: the regex engine decodes bad bytes
// to U+FFFD, which a byte comparison cannot see.
// Safe for concurrent use.
func (pf *Prefilter) MayMatch(line string) bool {
	if pf == nil || !utf8.ValidString(line) {
		return true
	}
	return len(pf.matcher.MatchThreadSafe([]byte(line))) > 0
}
