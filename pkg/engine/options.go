package engine

import (
	"runtime"

	"github.com/praetorian-inc/rgrep/pkg/matcher"
)

// DefaultChunkLines dispatches one task per line.
const DefaultChunkLines = 1

// Logger provides debug logging.
type Logger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}

// Options configures an Engine. Zero numeric fields and nil interfaces
// select defaults; the zero Options leaves the prefilter off.
type Options struct {
	// Workers caps concurrently running tasks (default GOMAXPROCS).
	Workers int

	// ChunkLines is the number of consecutive lines evaluated per task.
	ChunkLines int

	// Matcher compiles patterns (default regexp2 with DefaultMatchTimeout).
	Matcher matcher.Matcher

	// Prefilter skips regex evaluation of lines that cannot contain a
	// literal pattern.
	Prefilter bool

	Logger Logger
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		Workers:    runtime.GOMAXPROCS(0),
		ChunkLines: DefaultChunkLines,
		Matcher:    matcher.New(matcher.Config{}),
		Prefilter:  true,
		Logger:     NoopLogger{},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Workers <= 0 {
		o.Workers = d.Workers
	}
	if o.ChunkLines <= 0 {
		o.ChunkLines = d.ChunkLines
	}
	if o.Matcher == nil {
		o.Matcher = d.Matcher
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
