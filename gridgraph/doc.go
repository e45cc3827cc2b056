// Package gridgraph treats a fixed 2D board of cells as an unweighted graph,
// the topology every distance field and agent walk in ghostbfs runs on.
//
// What:
//
//   - Grid wraps a rectangular Layout of CellSpec descriptors.
//   - Cells are addressed by a row-major linear index: row*Cols + col.
//   - Enabled cells are traversable; disabled cells are walls.
//   - Adjacency is 4-directional, between enabled cells only, and never
//     wraps around the board edge.
//   - Distance is an explicit optional hop count; Distances holds one per cell.
//   - Neighbors(idx, mode, dist) filters adjacent cells by distance state:
//     Unvisited (no distance yet) or Frontier (distance already assigned).
//   - ConnectedComponents / Reachable partition the enabled cells.
//
// Neighbor order:
//
//	Neighbors always reports left, up, down, right. Distance values computed
//	by BFS do not depend on this order, but any consumer that picks the first
//	or last qualifying neighbor does.
//
// Complexity:
//
//   - NewGrid:             O(R×C) time and memory.
//   - Neighbors:           O(1).
//   - ConnectedComponents: O(R×C), Memory: O(R×C).
//
// Errors:
//
//   - ErrEmptyGrid: layout has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrIndexMismatch: a descriptor's Index is not its row-major position.
//
// Queries on out-of-range or disabled cells never fail; they return empty
// results.
package gridgraph
