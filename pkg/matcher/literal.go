package matcher

import "strings"

// metaChars are the characters that give a pattern regex meaning.
const metaChars = `\.+*?()|[]{}^$`

// IsLiteral reports whether pattern matches only its own text, so that a
// substring search finds exactly the lines the regex would.
func IsLiteral(pattern string) bool {
	return pattern != "" && !strings.ContainsAny(pattern, metaChars)
}
