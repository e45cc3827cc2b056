package render

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ghostbfs/session"
)

// Glyphs used by every surface.
const (
	GlyphAgent       = 'G'
	GlyphDestination = 'X'
	GlyphWall        = '#'
	GlyphEmpty       = '.'
)

// cellWidth is the number of columns one cell's label occupies.
const cellWidth = 3

// Options toggles presentation details.
type Options struct {
	ShowBorders   bool
	ShowDistances bool
}

// DefaultOptions shows both borders and distances.
func DefaultOptions() Options {
	return Options{ShowBorders: true, ShowDistances: true}
}

// Label returns the right-aligned text shown for cell idx.
func Label(snap session.Snapshot, idx int, opts Options) string {
	var s string
	switch {
	case idx == snap.Agent:
		s = string(GlyphAgent)
	case snap.IsDestination(idx):
		s = string(GlyphDestination)
	case !snap.Enabled[idx]:
		s = strings.Repeat(string(GlyphWall), cellWidth)
	case opts.ShowDistances && snap.Distances.Get(idx).IsSet():
		s = snap.Distances.Get(idx).String()
	default:
		s = string(GlyphEmpty)
	}
	if len(s) > cellWidth {
		s = s[len(s)-cellWidth:]
	}
	return fmt.Sprintf("%*s", cellWidth, s)
}

// Text renders snap as plain text, one line per board row (two with borders).
func Text(snap session.Snapshot, opts Options) string {
	var sb strings.Builder
	sep := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", snap.Cols)
	if opts.ShowBorders {
		sb.WriteString(sep)
		sb.WriteByte('\n')
	}
	for r := 0; r < snap.Rows; r++ {
		if opts.ShowBorders {
			sb.WriteByte('|')
		}
		for c := 0; c < snap.Cols; c++ {
			sb.WriteString(Label(snap, snap.Index(r, c), opts))
			if opts.ShowBorders {
				sb.WriteByte('|')
			}
		}
		sb.WriteByte('\n')
		if opts.ShowBorders {
			sb.WriteString(sep)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Status summarises the session in one line.
func Status(snap session.Snapshot) string {
	dest := "none"
	if snap.Destination != nil {
		dest = fmt.Sprint(*snap.Destination)
	}
	state := "idle"
	switch {
	case snap.Arrived:
		state = "arrived"
	case snap.Animating:
		state = "walking"
	}
	return fmt.Sprintf("agent %d  destination %s  steps %d  %s", snap.Agent, dest, snap.Steps, state)
}
