// Package bfs provides breadth-first distance propagation over a
// gridgraph.Grid, labelling every reachable enabled cell with its hop count.
//
// Propagate explores cells in increasing distance from a source cell,
// with optional hooks and depth limiting.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// queueItem pairs a cell index with its BFS depth.
type queueItem struct {
	idx   int
	depth int
}

// walker encapsulates mutable propagation state.
type walker struct {
	grid  *gridgraph.Grid
	dist  gridgraph.Distances
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// Propagate runs breadth-first search on g from source, writing hop
// distances into dist. Cells already labelled in dist are treated as
// visited, so callers clear dist first for a fresh field.
// Returns ErrGridNil, ErrDistancesSize, ErrSourceOutOfRange or
// ErrSourceDisabled for invalid input, ErrOptionViolation for bad options,
// the context error on cancellation, or any user-supplied hook error.
func Propagate(g *gridgraph.Grid, dist gridgraph.Distances, source int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if len(dist) != g.Len() {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrDistancesSize, len(dist), g.Len())
	}
	if !g.Contains(source) {
		return nil, fmt.Errorf("%w: %d", ErrSourceOutOfRange, source)
	}
	if !g.Enabled(source) {
		return nil, fmt.Errorf("%w: %d", ErrSourceDisabled, source)
	}

	n := g.EnabledCount()
	w := &walker{
		grid:  g,
		dist:  dist,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Source: source,
			Order:  make([]int, 0, n),
		},
	}

	// Seed queue with the source at distance 0
	w.enqueue(source, 0)
	return w.res, w.loop()
}

// enqueue labels idx with depth d, calls OnEnqueue, and queues it.
func (w *walker) enqueue(idx, d int) {
	w.dist.Set(idx, d)
	w.res.Reached++
	if d > w.res.MaxDepth {
		w.res.MaxDepth = d
	}
	w.opts.OnEnqueue(idx, d)
	w.queue = append(w.queue, queueItem{idx: idx, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.idx, item.depth)
	return item
}

// visit records the cell in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.idx)
	if err := w.opts.OnVisit(item.idx, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", item.idx, err)
	}
	return nil
}

// enqueueNeighbors labels every unvisited neighbor with depth+1, honoring
// MaxDepth. The Unvisited filter is what keeps each distance set once.
func (w *walker) enqueueNeighbors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.grid.Neighbors(item.idx, gridgraph.Unvisited, w.dist) {
		w.enqueue(nbr, nextDepth)
	}
}
