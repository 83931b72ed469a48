package matcher

import "time"

// DefaultMatchTimeout guards against catastrophic backtracking in
// Perl-mode patterns.
const DefaultMatchTimeout = 5 * time.Second
