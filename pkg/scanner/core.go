package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praetorian-inc/rgrep/pkg/engine"
	"github.com/praetorian-inc/rgrep/pkg/enum"
	"github.com/praetorian-inc/rgrep/pkg/matcher"
	"github.com/praetorian-inc/rgrep/pkg/types"
)

// Core walks a path and matches every file it finds, one file at a time.
// Failures of individual files are reported to the Handler and never stop
// the walk.
type Core struct {
	config Config
	engine *engine.Engine
	logger DebugLogger
}

// NewCore creates a new Core scanner.
func NewCore(config Config, logger DebugLogger) *Core {
	if logger == nil {
		logger = NoopLogger{}
	}

	e := engine.New(engine.Options{
		Workers:    config.Workers,
		ChunkLines: config.ChunkLines,
		Matcher:    matcher.New(matcher.Config{MatchTimeout: config.MatchTimeout}),
		Prefilter:  config.Prefilter,
		Logger:     logger,
	})

	return &Core{
		config: config,
		engine: e,
		logger: logger,
	}
}

// Engine returns the line-matching engine used for each file.
func (c *Core) Engine() *engine.Engine {
	return c.engine
}

// Scan searches root for pattern. The returned error is non-nil only when
// root cannot be walked, the context is cancelled, or the handler fails.
func (c *Core) Scan(ctx context.Context, root, pattern string, handler Handler) (Summary, error) {
	start := time.Now()
	var summary Summary

	enumerator := enum.NewFilesystemEnumerator(enum.Config{
		Root:             root,
		IncludeHidden:    c.config.IncludeHidden,
		FollowSymlinks:   c.config.FollowSymlinks,
		RespectGitignore: c.config.RespectGitignore,
		OnError: func(path string, err error) {
			c.logger.Log("skipping %s: %v", path, err)
			summary.Errors++
			handler.HandleError(path, err)
		},
	})

	c.logger.Log("scanning %s for %q", root, pattern)
	err := enumerator.Enumerate(ctx, func(path string) error {
		summary.Files++

		records, err := c.engine.MatchFile(ctx, path, pattern)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			c.logger.Log("%s failed (%s): %v", path, engine.KindOf(err), err)
			summary.Errors++
			handler.HandleError(path, err)
			return nil
		}

		if len(records) > 0 {
			summary.FilesMatched++
			summary.Matches += len(records)
		}

		if err := handler.HandleResult(types.FileResult{Path: path, Records: records}); err != nil {
			return fmt.Errorf("writing results for %s: %w", path, err)
		}
		return nil
	})
	summary.Elapsed = time.Since(start)

	c.logger.Log("scanned %d files, %d matches, %d errors in %v",
		summary.Files, summary.Matches, summary.Errors, summary.Elapsed)

	return summary, err
}
