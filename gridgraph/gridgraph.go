// Package gridgraph provides utilities to treat a 2D board of enabled and
// disabled cells as a graph. It supports:
//
//   - Construction from descriptor layouts or boolean masks
//   - Row-major index and coordinate conversion
//   - Distance-filtered 4-neighborhood queries
//   - Identification of connected components of enabled cells
package gridgraph

import "fmt"

// NewGrid constructs a Grid from a non-empty, rectangular Layout.
// It copies the enabled flags so later edits to layout have no effect.
// Returns ErrEmptyGrid if layout has no rows or no columns,
// ErrNonRectangular if any row length differs, and ErrIndexMismatch if a
// descriptor's Index disagrees with its row-major position.
// Algorithmic complexity: O(R×C) time and memory.
func NewGrid(layout Layout) (*Grid, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(layout), len(layout[0])
	for _, row := range layout {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	enabled := make([]bool, rows*cols)
	for r, row := range layout {
		for c, cell := range row {
			if want := r*cols + c; cell.Index != want {
				return nil, fmt.Errorf("%w: row %d col %d has index %d, want %d",
					ErrIndexMismatch, r, c, cell.Index, want)
			}
			enabled[cell.Index] = cell.Enabled
		}
	}

	return newGrid(rows, cols, enabled), nil
}

// FromMask builds a Grid from a rectangular boolean mask where true marks an
// enabled cell. Descriptor indices are derived from position.
func FromMask(mask [][]bool) (*Grid, error) {
	layout := make(Layout, len(mask))
	for r, row := range mask {
		layout[r] = make([]CellSpec, len(row))
		for c, on := range row {
			layout[r][c] = CellSpec{Enabled: on, Index: r*len(row) + c}
		}
	}

	return NewGrid(layout)
}

// Open builds a rows×cols Grid with every cell enabled.
func Open(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	enabled := make([]bool, rows*cols)
	for i := range enabled {
		enabled[i] = true
	}

	return newGrid(rows, cols, enabled), nil
}

func newGrid(rows, cols int, enabled []bool) *Grid {
	return &Grid{
		Rows:    rows,
		Cols:    cols,
		enabled: enabled,
		// left, up, down, right
		neighborOffsets: [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}},
	}
}

// Len returns the number of cells, enabled or not.
func (g *Grid) Len() int {
	return g.Rows * g.Cols
}

// InBounds reports whether (row,col) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Contains reports whether idx addresses a cell of the grid.
func (g *Grid) Contains(idx int) bool {
	return idx >= 0 && idx < g.Len()
}

// Enabled reports whether idx is an in-range traversable cell.
func (g *Grid) Enabled(idx int) bool {
	return g.Contains(idx) && g.enabled[idx]
}

// EnabledCount returns how many cells are traversable.
func (g *Grid) EnabledCount() int {
	n := 0
	for _, on := range g.enabled {
		if on {
			n++
		}
	}
	return n
}

// Index maps (row,col) to a row-major index: row*Cols + col.
// Complexity: O(1).
func (g *Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// Coordinate converts a row-major index back to (row,col).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (row, col int) {
	return idx / g.Cols, idx % g.Cols
}

// Layout rebuilds the descriptor form of the grid.
func (g *Grid) Layout() Layout {
	layout := make(Layout, g.Rows)
	for r := 0; r < g.Rows; r++ {
		layout[r] = make([]CellSpec, g.Cols)
		for c := 0; c < g.Cols; c++ {
			idx := g.Index(r, c)
			layout[r][c] = CellSpec{Enabled: g.enabled[idx], Index: idx}
		}
	}
	return layout
}

// Neighbors returns the enabled cells adjacent to idx whose distance state
// matches mode, in left, up, down, right order.
// A disabled or out-of-range idx yields an empty slice. dist must have been
// created for this grid; cells beyond its length count as unset.
// Complexity: O(1).
func (g *Grid) Neighbors(idx int, mode Mode, dist Distances) []int {
	if !g.Enabled(idx) {
		return nil
	}
	row, col := g.Coordinate(idx)
	out := make([]int, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		nr, nc := row+d[0], col+d[1]
		if !g.InBounds(nr, nc) {
			continue
		}
		n := g.Index(nr, nc)
		if !g.enabled[n] {
			continue
		}
		set := dist.Get(n).IsSet()
		if (mode == Unvisited && !set) || (mode == Frontier && set) {
			out = append(out, n)
		}
	}
	return out
}

// Adjacent returns every enabled neighbor of idx regardless of distance state,
// in left, up, down, right order.
func (g *Grid) Adjacent(idx int) []int {
	if !g.Enabled(idx) {
		return nil
	}
	row, col := g.Coordinate(idx)
	out := make([]int, 0, len(g.neighborOffsets))
	for _, d := range g.neighborOffsets {
		nr, nc := row+d[0], col+d[1]
		if g.InBounds(nr, nc) && g.enabled[g.Index(nr, nc)] {
			out = append(out, g.Index(nr, nc))
		}
	}
	return out
}
