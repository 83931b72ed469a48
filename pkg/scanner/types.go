package scanner

import (
	"time"

	"github.com/praetorian-inc/rgrep/pkg/types"
)

// Config controls how a tree is walked and how each file is matched.
// Zero values select defaults.
type Config struct {
	Workers      int
	ChunkLines   int
	MatchTimeout time.Duration
	Prefilter    bool

	IncludeHidden    bool
	FollowSymlinks   bool
	RespectGitignore bool
}

// Handler receives scan output. Calls are made from a single goroutine in
// walk order.
type Handler interface {
	// HandleResult receives every scanned file, including files without
	// matches. An error aborts the scan.
	HandleResult(result types.FileResult) error

	// HandleError receives files and directories that could not be scanned.
	HandleError(path string, err error)
}

// HandlerFuncs adapts a pair of functions to Handler. Nil fields are no-ops.
type HandlerFuncs struct {
	Result func(result types.FileResult) error
	Error  func(path string, err error)
}

func (h HandlerFuncs) HandleResult(result types.FileResult) error {
	if h.Result == nil {
		return nil
	}
	return h.Result(result)
}

func (h HandlerFuncs) HandleError(path string, err error) {
	if h.Error != nil {
		h.Error(path, err)
	}
}

// Summary totals one scan.
type Summary struct {
	Files        int           `json:"files"`         // regular files visited
	FilesMatched int           `json:"files_matched"` // files with at least one match
	Matches      int           `json:"matches"`       // match records across all files
	Errors       int           `json:"errors"`        // files or directories that failed
	Elapsed      time.Duration `json:"elapsed"`
}

// DebugLogger provides debug logging
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
