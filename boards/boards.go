package boards

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// DefaultStart is the agent's starting cell on the built-in boards.
const DefaultStart = 18

// DefaultName names the board used when none is requested.
const DefaultName = "12x12"

// Sentinel errors for board lookup and parsing.
var (
	// ErrUnknownBoard is returned for a name with no built-in board.
	ErrUnknownBoard = errors.New("boards: unknown board")
	// ErrBadPattern is returned for pattern rows with characters other than '.' and '#'.
	ErrBadPattern = errors.New("boards: invalid pattern")
	// ErrNoCells is returned when a layout file has neither rows nor pattern.
	ErrNoCells = errors.New("boards: layout has no cells")
	// ErrAmbiguous is returned when a layout file has both rows and pattern.
	ErrAmbiguous = errors.New("boards: layout has both rows and pattern")
	// ErrBadStart is returned when the start cell is missing or a wall.
	ErrBadStart = errors.New("boards: start cell must be enabled")
)

// Board is a named static layout plus the agent's starting cell.
type Board struct {
	Name   string
	Start  int
	Layout gridgraph.Layout
}

// Grid builds the board's grid.
func (b Board) Grid() (*gridgraph.Grid, error) {
	return gridgraph.NewGrid(b.Layout)
}

var builtin = map[string][]string{
	"12x12": {
		"............",
		".##.......#.",
		".#..####..#.",
		".#.....#....",
		"...##..#.##.",
		".#..#....#..",
		".#..#.##.#.#",
		".#........#.",
		"..##.##.#...",
		".....#..#.#.",
		".###.#.##.#.",
		"............",
	},
	"open-12x12": {
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
	},
	"walled-12x12": {
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		"............",
		".......###..",
		".......#.#..",
		".......###..",
		"............",
		"............",
	},
}

// Names lists the built-in boards in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Get returns the built-in board called name.
func Get(name string) (Board, error) {
	rows, ok := builtin[name]
	if !ok {
		return Board{}, fmt.Errorf("%w: %q", ErrUnknownBoard, name)
	}
	return FromPattern(name, DefaultStart, rows)
}

// Default returns the "12x12" board.
func Default() Board {
	b, err := Get(DefaultName)
	if err != nil {
		panic(err)
	}
	return b
}

// FromPattern converts '.'/'#' rows into a Board. A negative start selects
// the default start rule.
func FromPattern(name string, start int, rows []string) (Board, error) {
	layout := make(gridgraph.Layout, len(rows))
	for r, row := range rows {
		cells := []rune(row)
		layout[r] = make([]gridgraph.CellSpec, len(cells))
		for c, ch := range cells {
			switch ch {
			case '.', '#':
			default:
				return Board{}, fmt.Errorf("%w: row %d col %d has %q", ErrBadPattern, r, c, ch)
			}
			layout[r][c] = gridgraph.CellSpec{Enabled: ch == '.', Index: r*len(cells) + c}
		}
	}
	return build(name, start, layout)
}

// build validates layout and resolves the start cell.
func build(name string, start int, layout gridgraph.Layout) (Board, error) {
	g, err := gridgraph.NewGrid(layout)
	if err != nil {
		return Board{}, fmt.Errorf("boards: %s: %w", name, err)
	}
	if start < 0 {
		start = resolveStart(g)
	}
	if !g.Enabled(start) {
		return Board{}, fmt.Errorf("%w: %s: cell %d", ErrBadStart, name, start)
	}
	return Board{Name: name, Start: start, Layout: layout}, nil
}

func resolveStart(g *gridgraph.Grid) int {
	if g.Enabled(DefaultStart) {
		return DefaultStart
	}
	for i := 0; i < g.Len(); i++ {
		if g.Enabled(i) {
			return i
		}
	}
	return -1
}
