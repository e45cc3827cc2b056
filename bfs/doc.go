// Package bfs propagates unweighted hop distances over a gridgraph.Grid,
// writing the distance field that the ghost walk descends.
//
// What
//
//   - Explore enabled cells in non-decreasing distance from a source cell.
//   - Writes each reached cell's hop count into a caller-owned
//     gridgraph.Distances exactly once (the source gets 0).
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Reached: number of labelled cells
//   - MaxDepth: largest distance assigned
//   - Supports functional hooks at three stages:
//   - OnEnqueue (when a cell is labelled and queued)
//   - OnDequeue (immediately before visiting)
//   - OnVisit   (when visiting; may abort with an error)
//   - Honors MaxDepth limit (d>0) or explicit "no limit" (d==0).
//
// Why
//
//   - Compute shortest hop counts to every reachable cell in O(R·C).
//   - Cells outside the source's component stay unset, which is how the
//     walk detects that it cannot progress.
//
// Determinism
//
//	gridgraph.Grid.Neighbors reports left, up, down, right, and BFS enqueues
//	in that order, so the visit sequence is fully reproducible. Distance
//	values never depend on that order.
//
// Complexity (N = R×C cells)
//
//   - Time:   O(N)   (each cell labelled once, four neighbor checks each)
//   - Memory: O(N)   (queue and Order)
//
// Usage
//
//	dist := gridgraph.NewDistances(g)
//	res, err := bfs.Propagate(g, dist, source)
//	if err != nil {
//		// ErrGridNil, ErrDistancesSize, ErrSourceOutOfRange,
//		// ErrSourceDisabled, ErrOptionViolation, ctx errors or hook errors
//	}
//
//	// With functional options:
//	res, err := bfs.Propagate(
//		g, dist, source,
//		bfs.WithContext(ctx),
//		bfs.WithMaxDepth(3),
//		bfs.WithOnEnqueue(func(idx, depth int) { /* ... */ }),
//		bfs.WithOnVisit(func(idx, depth int) error { /* ... */ return nil }),
//	)
//
// Errors
//
//   - ErrGridNil           if the grid pointer is nil.
//   - ErrDistancesSize     if dist was not sized for the grid.
//   - ErrSourceOutOfRange  if the source index is not a cell of the grid.
//   - ErrSourceDisabled    if the source is a wall.
//   - ErrOptionViolation   if an Option is invalid (e.g. negative MaxDepth).
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
