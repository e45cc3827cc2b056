package render

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ghostbfs/session"
)

var (
	styleBase        = tcell.StyleDefault
	styleBorder      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall        = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray).Background(tcell.ColorDarkSlateGray)
	styleDistance    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleAgent       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorPurple).Bold(true)
	styleDestination = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleStatus      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Terminal draws snapshots on a tcell.Screen and routes input to a session.
// Left click selects a destination; 'b' and 'd' toggle borders and
// distances; 'r' resets; 'q', Esc and Ctrl-C quit.
type Terminal struct {
	screen  tcell.Screen
	opts    Options
	log     logrus.FieldLogger
	updates chan session.Snapshot
	pressed bool
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen, opts Options, log logrus.FieldLogger) *Terminal {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Terminal{
		screen:  screen,
		opts:    opts,
		log:     log.WithField("component", "terminal"),
		updates: make(chan session.Snapshot, 1),
	}
}

// Options returns the current display toggles.
func (t *Terminal) Options() Options {
	return t.opts
}

// Notify queues snap for drawing, replacing any snapshot not yet drawn.
// It never blocks, so it is safe as a session subscriber.
func (t *Terminal) Notify(snap session.Snapshot) {
	for {
		select {
		case t.updates <- snap:
			return
		default:
		}
		select {
		case <-t.updates:
		default:
		}
	}
}

// cellOrigin returns the screen position of the first column of cell (r,c).
func (t *Terminal) cellOrigin(r, c int) (x, y int) {
	if t.opts.ShowBorders {
		return 1 + c*(cellWidth+1), 1 + 2*r
	}
	return c * cellWidth, r
}

// boardHeight is the number of screen rows the board occupies.
func (t *Terminal) boardHeight(rows int) int {
	if t.opts.ShowBorders {
		return 2*rows + 1
	}
	return rows
}

// CellAt maps a screen position to a cell index of snap.
func (t *Terminal) CellAt(snap session.Snapshot, x, y int) (int, bool) {
	var r, c int
	if t.opts.ShowBorders {
		x, y = x-1, y-1
		if x < 0 || y < 0 || x%(cellWidth+1) == cellWidth || y%2 == 1 {
			return 0, false
		}
		r, c = y/2, x/(cellWidth+1)
	} else {
		if x < 0 || y < 0 {
			return 0, false
		}
		r, c = y, x/cellWidth
	}
	if r >= snap.Rows || c >= snap.Cols {
		return 0, false
	}
	return snap.Index(r, c), true
}

// Draw renders snap and the status line, then shows the screen.
func (t *Terminal) Draw(snap session.Snapshot) {
	t.screen.Clear()
	if t.opts.ShowBorders {
		t.drawBorders(snap)
	}
	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			idx := snap.Index(r, c)
			x, y := t.cellOrigin(r, c)
			t.putString(x, y, Label(snap, idx, t.opts), cellStyle(snap, idx))
		}
	}
	t.putString(0, t.boardHeight(snap.Rows)+1, Status(snap), styleStatus)
	t.screen.Show()
}

func cellStyle(snap session.Snapshot, idx int) tcell.Style {
	switch {
	case idx == snap.Agent:
		return styleAgent
	case snap.IsDestination(idx):
		return styleDestination
	case !snap.Enabled[idx]:
		return styleWall
	case snap.Distances.Get(idx).IsSet():
		return styleDistance
	default:
		return styleBase
	}
}

func (t *Terminal) drawBorders(snap session.Snapshot) {
	width := snap.Cols*(cellWidth+1) + 1
	for y := 0; y < t.boardHeight(snap.Rows); y++ {
		for x := 0; x < width; x++ {
			onRow, onCol := y%2 == 0, x%(cellWidth+1) == 0
			switch {
			case onRow && onCol:
				t.screen.SetContent(x, y, '+', nil, styleBorder)
			case onRow:
				t.screen.SetContent(x, y, '-', nil, styleBorder)
			case onCol:
				t.screen.SetContent(x, y, '|', nil, styleBorder)
			}
		}
	}
}

func (t *Terminal) putString(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// HandleClick selects the cell under (x,y). Clicks on walls or outside the
// board are ignored.
func (t *Terminal) HandleClick(sess *session.Session, snap session.Snapshot, x, y int) {
	idx, ok := t.CellAt(snap, x, y)
	if !ok {
		return
	}
	if err := sess.Select(idx); err != nil {
		t.log.WithError(err).WithField("cell", idx).Debug("click ignored")
	}
}

// HandleRune applies a key command and reports whether the user asked to quit.
func (t *Terminal) HandleRune(sess *session.Session, r rune) (quit bool) {
	switch r {
	case 'q', 'Q':
		return true
	case 'b', 'B':
		t.opts.ShowBorders = !t.opts.ShowBorders
	case 'd', 'D':
		t.opts.ShowDistances = !t.opts.ShowDistances
	case 'r', 'R':
		sess.Reset()
	}
	return false
}

// Run draws sess and processes input until the user quits, ctx is done, or
// the screen stops delivering events. The caller owns screen Init and Fini.
func (t *Terminal) Run(ctx context.Context, sess *session.Session) error {
	unsubscribe := sess.Subscribe(t.Notify)
	defer unsubscribe()
	t.screen.EnableMouse()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	snap := sess.Snapshot()
	t.Draw(snap)
	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-t.updates:
			// a key handler may already have drawn a newer state
			if u.Seq >= snap.Seq {
				snap = u
				t.Draw(snap)
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					if t.HandleRune(sess, ev.Rune()) {
						return nil
					}
					snap = sess.Snapshot()
					t.Draw(snap)
				}
			case *tcell.EventMouse:
				down := ev.Buttons()&tcell.Button1 != 0
				if down && !t.pressed {
					x, y := ev.Position()
					t.HandleClick(sess, snap, x, y)
				}
				t.pressed = down
			case *tcell.EventResize:
				t.screen.Sync()
				t.Draw(snap)
			}
		}
	}
}
