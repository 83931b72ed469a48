package matcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/rgrep/pkg/types"
)

// RegexpMatcher implements Matcher using regexp2.
//
// Patterns are compiled in the default Perl/.NET mode, where \w, \d and \s
// are Unicode-aware. Patterns that need RE2-only syntax fall back to RE2
// mode, whose classes are ASCII-only: (?P<name>...) is rejected by the
// default mode, and POSIX classes such as [[:alpha:]] would parse there
// as plain character sets.
// regexp2 matches over rune slices, so match positions come back in
// characters rather than bytes.
type RegexpMatcher struct {
	timeout time.Duration
}

// NewRegexp creates a regexp2 matcher. A zero timeout uses DefaultMatchTimeout.
func NewRegexp(timeout time.Duration) *RegexpMatcher {
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	return &RegexpMatcher{timeout: timeout}
}

// posixClass finds [:name:] inside a bracket expression.
var posixClass = regexp2.MustCompile(`\[:\^?[a-z]+:\]`, regexp2.None)

// Compile parses pattern.
func (m *RegexpMatcher) Compile(pattern string) (Pattern, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	re.MatchTimeout = m.timeout
	return &regexpPattern{re: re}, nil
}

// compile picks the regexp2 mode for pattern. The returned error is the
// default mode's, which names the offending construct.
func compile(pattern string) (*regexp2.Regexp, error) {
	if ok, _ := posixClass.MatchString(pattern); ok {
		return regexp2.Compile(pattern, regexp2.RE2)
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err == nil {
		return re, nil
	}
	if re2, re2Err := regexp2.Compile(pattern, regexp2.RE2); re2Err == nil {
		return re2, nil
	}
	return nil, err
}

// regexpPattern is read-only after Compile; regexp2 guards its runner
// cache internally.
type regexpPattern struct {
	re *regexp2.Regexp
}

func (p *regexpPattern) FindFirst(text string) (types.Span, bool, error) {
	match, err := p.re.FindStringMatch(text)
	if err != nil {
		if strings.Contains(err.Error(), "match timeout") {
			return types.Span{}, false, fmt.Errorf("%w after %v", ErrMatchTimeout, p.re.MatchTimeout)
		}
		return types.Span{}, false, fmt.Errorf("regex match error: %w", err)
	}
	if match == nil {
		return types.Span{}, false, nil
	}
	return types.Span{Start: match.Index, End: match.Index + match.Length}, true, nil
}

func (p *regexpPattern) String() string {
	return p.re.String()
}
