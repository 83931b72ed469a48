// Package rgrep searches files and directory trees for lines matching a
// regular expression.
//
// Lines of a file are matched concurrently but always reported in file
// order, each with the character span of its first match.
//
// # Basic Usage
//
//	searcher := rgrep.NewSearcher()
//
//	records, err := searcher.SearchFile(ctx, "notes.txt", `Match\w+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range records {
//	    fmt.Printf("%d:%d %s\n", r.LineNumber, r.MatchStart, r.Content)
//	}
//
// # Searching a Tree
//
// Failures of individual files are passed to the callback and do not stop
// the search:
//
//	summary, err := searcher.SearchTree(ctx, "src", "TODO", func(res rgrep.FileResult, err error) {
//	    if err != nil {
//	        log.Printf("%s: %v", res.Path, err)
//	        return
//	    }
//	    fmt.Println(res.Path, len(res.Records))
//	})
package rgrep

import (
	"context"
	"time"

	"github.com/praetorian-inc/rgrep/pkg/engine"
	"github.com/praetorian-inc/rgrep/pkg/scanner"
	"github.com/praetorian-inc/rgrep/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/rgrep" without subpackages.
type (
	// MatchRecord is the first match of the pattern on one line.
	MatchRecord = types.MatchRecord

	// FileResult holds the ordered records of one file.
	FileResult = types.FileResult

	// Summary totals a tree search.
	Summary = scanner.Summary

	// Error is the failure of a single file.
	Error = engine.Error
)

// Re-export error classification helpers.
var (
	IsIOError      = engine.IsIOError
	IsPatternError = engine.IsPatternError
	IsTaskFailure  = engine.IsTaskFailure
)

// Searcher runs searches with a fixed configuration. It is safe for
// concurrent use.
type Searcher struct {
	config scanner.Config
	core   *scanner.Core
}

// Option configures a Searcher.
type Option func(*scanner.Config)

// WithWorkers caps concurrent line evaluations per file.
// Default is GOMAXPROCS.
func WithWorkers(workers int) Option {
	return func(c *scanner.Config) {
		c.Workers = workers
	}
}

// WithChunkLines sets how many consecutive lines each task evaluates.
// Default is 1.
func WithChunkLines(lines int) Option {
	return func(c *scanner.Config) {
		c.ChunkLines = lines
	}
}

// WithMatchTimeout bounds the evaluation of a single line.
// Default is 5 seconds.
func WithMatchTimeout(timeout time.Duration) Option {
	return func(c *scanner.Config) {
		c.MatchTimeout = timeout
	}
}

// WithPrefilter enables or disables keyword gating of literal patterns.
// Enabled by default.
func WithPrefilter(enabled bool) Option {
	return func(c *scanner.Config) {
		c.Prefilter = enabled
	}
}

// WithHidden includes hidden files and directories in tree searches.
func WithHidden() Option {
	return func(c *scanner.Config) {
		c.IncludeHidden = true
	}
}

// WithGitignore skips paths listed in the root .gitignore during tree searches.
func WithGitignore() Option {
	return func(c *scanner.Config) {
		c.RespectGitignore = true
	}
}

// NewSearcher creates a new Searcher with the given options.
func NewSearcher(opts ...Option) *Searcher {
	config := scanner.Config{Prefilter: true}
	for _, opt := range opts {
		opt(&config)
	}

	return &Searcher{
		config: config,
		core:   scanner.NewCore(config, nil),
	}
}

// SearchFile returns the matching lines of a single file in line order.
// A file without matches returns an empty slice and no error.
func (s *Searcher) SearchFile(ctx context.Context, path, pattern string) ([]*MatchRecord, error) {
	return s.core.Engine().MatchFile(ctx, path, pattern)
}

// SearchTree searches every file under root. fn is called once per file
// in walk order; err is non-nil when the file could not be searched, in
// which case only res.Path is set.
func (s *Searcher) SearchTree(ctx context.Context, root, pattern string, fn func(res FileResult, err error)) (Summary, error) {
	return s.core.Scan(ctx, root, pattern, scanner.HandlerFuncs{
		Result: func(result types.FileResult) error {
			fn(result, nil)
			return nil
		},
		Error: func(path string, err error) {
			fn(FileResult{Path: path}, err)
		},
	})
}
