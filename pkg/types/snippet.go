package types

// Snippet is a matching line cut around its match.
type Snippet struct {
	Before   string // text before the match
	Matching string // the matched text
	After    string // text after the match
}
