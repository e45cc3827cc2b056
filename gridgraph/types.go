// Package gridgraph defines core types, modes, and sentinel errors
// for the gridgraph subpackage of github.com/katalvlaran/ghostbfs.
package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates the layout has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: layout must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrIndexMismatch indicates a descriptor index that is not row*cols+col.
	ErrIndexMismatch = errors.New("gridgraph: cell index does not match its position")
)

// Mode selects which adjacent cells Neighbors reports.
type Mode int

const (
	// Unvisited reports neighbors that have no distance assigned yet.
	// BFS expansion uses it.
	Unvisited Mode = iota
	// Frontier reports neighbors that already carry a distance.
	// The agent walk uses it.
	Frontier
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Unvisited:
		return "unvisited"
	case Frontier:
		return "frontier"
	default:
		return "unknown"
	}
}

// CellSpec is a single static layout descriptor.
type CellSpec struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Index   int  `yaml:"index" json:"index"`
}

// Layout is an ordered list of rows, each an ordered list of descriptors.
type Layout [][]CellSpec

// Grid is the immutable traversable topology built from a Layout.
// Rows and Cols define dimensions; enabled[i] reports whether cell i is
// traversable. neighborOffsets holds {dRow, dCol} in left, up, down, right order.
type Grid struct {
	Rows, Cols      int
	enabled         []bool
	neighborOffsets [4][2]int
}
