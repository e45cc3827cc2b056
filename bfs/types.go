// Package bfs provides tunable options and error definitions
// for breadth-first distance propagation over a gridgraph.Grid.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// Sentinel errors for BFS execution.
var (
	// ErrGridNil is returned if a nil grid pointer is passed.
	ErrGridNil = errors.New("bfs: grid is nil")

	// ErrDistancesSize is returned when the distance map length differs from the grid.
	ErrDistancesSize = errors.New("bfs: distances not sized for grid")

	// ErrSourceOutOfRange is returned when the source index is not a grid cell.
	ErrSourceOutOfRange = errors.New("bfs: source cell out of range")

	// ErrSourceDisabled is returned when the source cell is a wall.
	ErrSourceDisabled = errors.New("bfs: source cell is disabled")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNotReached is returned by PathTo for cells without a distance.
	ErrNotReached = errors.New("bfs: cell not reached")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Propagate is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize propagation.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a cell is labelled and queued.
	// Receives the cell index and its distance from the source.
	OnEnqueue func(idx, depth int)

	// OnDequeue is called immediately before visiting a cell.
	OnDequeue func(idx, depth int)

	// OnVisit is called when visiting a cell. If it returns an error,
	// propagation aborts and returns that error.
	OnVisit func(idx, depth int) error

	// MaxDepth, if > 0, leaves cells farther than this unset.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no-op hooks (OnEnqueue, OnDequeue, OnVisit)
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		OnEnqueue: func(int, int) {},
		OnDequeue: func(int, int) {},
		OnVisit:   func(int, int) error { return nil },
		MaxDepth:  0,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(idx, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(idx, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops propagation.
func WithOnVisit(fn func(idx, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops labelling beyond the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

// Result holds the outcome of a propagation:
//   - Order: cells visited, in visit sequence (source first).
//   - Reached: number of cells that received a distance.
//   - MaxDepth: the largest distance assigned.
type Result struct {
	Source   int
	Order    []int
	Reached  int
	MaxDepth int
}

// PathTo reconstructs a shortest path from dest back to the source by
// repeatedly stepping onto the first neighbor (left, up, down, right) whose
// distance is exactly one less. The returned path runs source → dest.
// Returns ErrNotReached if dest carries no distance.
func PathTo(g *gridgraph.Grid, dist gridgraph.Distances, dest int) ([]int, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	d, ok := dist.Get(dest).Value()
	if !ok || !g.Enabled(dest) {
		return nil, fmt.Errorf("%w: %d", ErrNotReached, dest)
	}
	path := make([]int, d+1)
	path[d] = dest
	for cur := dest; d > 0; d-- {
		next := -1
		for _, n := range g.Neighbors(cur, gridgraph.Frontier, dist) {
			if v, _ := dist.Get(n).Value(); v == d-1 {
				next = n
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: broken distance chain at %d", ErrNotReached, cur)
		}
		path[d-1] = next
		cur = next
	}

	return path, nil
}
