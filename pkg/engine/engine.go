// Package engine matches a pattern against every line of a file.
//
// Lines are read and numbered sequentially, then evaluated concurrently in
// batches. Each batch writes into its own slots of a result slice indexed by
// line position, so the output is in file order regardless of which task
// finishes first.
package engine

import (
	"context"

	goerrors "github.com/go-errors/errors"
	"github.com/praetorian-inc/rgrep/pkg/matcher"
	"github.com/praetorian-inc/rgrep/pkg/prefilter"
	"github.com/praetorian-inc/rgrep/pkg/source"
	"github.com/praetorian-inc/rgrep/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Engine runs per-line pattern evaluation across a bounded set of goroutines.
// An Engine is safe for concurrent use.
type Engine struct {
	opts Options
}

// New creates an Engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// MatchFile returns the first match of pattern on every matching line of
// path, ordered by line number. A file without matches returns an empty
// slice and no error.
//
// A context that is already done returns ctx.Err() unwrapped, before the
// file is opened. Other errors are *Error values: KindIO when the file
// cannot be read, KindPattern when pattern does not compile (no lines are
// evaluated), KindTask when a line evaluation fails or panics (no partial
// results are returned).
func (e *Engine) MatchFile(ctx context.Context, path, pattern string) ([]*types.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := source.ReadAll(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Path: path, Err: err}
	}

	compiled, err := e.opts.Matcher.Compile(pattern)
	if err != nil {
		return nil, &Error{Kind: KindPattern, Path: path, Err: err}
	}

	e.opts.Logger.Log("matching %d lines of %s", len(lines), path)
	return e.MatchLines(path, lines, compiled)
}

// MatchLines evaluates numbered lines against a compiled pattern.
// lines must be in file order; path is only used to label errors.
func (e *Engine) MatchLines(path string, lines []source.Line, p matcher.Pattern) ([]*types.MatchRecord, error) {
	if len(lines) == 0 {
		return []*types.MatchRecord{}, nil
	}

	var pf *prefilter.Prefilter
	if e.opts.Prefilter {
		pf = prefilter.ForPattern(p.String())
	}

	// One slot per line; a task only writes the slots of its own batch.
	slots := make([]*types.MatchRecord, len(lines))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)

	chunk := e.opts.ChunkLines
	for lo := 0; lo < len(lines); lo += chunk {
		hi := min(lo+chunk, len(lines))
		batch, out := lines[lo:hi], slots[lo:hi]
		g.Go(func() error {
			return e.runTask(path, batch, out, p, pf)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*types.MatchRecord, 0, countFilled(slots))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// runTask evaluates one batch of lines. A panic is converted to a KindTask
// error carrying the stack.
func (e *Engine) runTask(path string, batch []source.Line, out []*types.MatchRecord, p matcher.Pattern, pf *prefilter.Prefilter) (err error) {
	current := 0
	defer func() {
		if r := recover(); r != nil {
			wrapped := goerrors.Wrap(r, 2)
			e.opts.Logger.Log("panic matching %s line %d: %s", path, current, wrapped.ErrorStack())
			err = &Error{Kind: KindTask, Path: path, Line: current, Err: wrapped}
		}
	}()

	for i, line := range batch {
		current = line.Number
		if !pf.MayMatch(line.Content) {
			continue
		}

		span, ok, ferr := p.FindFirst(line.Content)
		if ferr != nil {
			return &Error{Kind: KindTask, Path: path, Line: line.Number, Err: ferr}
		}
		if !ok {
			continue
		}
		if !span.Within(line.Content) {
			return &Error{Kind: KindTask, Path: path, Line: line.Number, Err: &SpanError{Span: span, Length: types.RuneCount(line.Content)}}
		}

		out[i] = types.NewMatchRecord(line.Number, line.Content, span)
	}
	return nil
}

func countFilled(slots []*types.MatchRecord) int {
	n := 0
	for _, rec := range slots {
		if rec != nil {
			n++
		}
	}
	return n
}
