package session

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ghostbfs/bfs"
	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// Session is one board's mutable state: destination, distance field, agent
// position and the active animation timer.
type Session struct {
	mu   sync.Mutex
	grid *gridgraph.Grid
	dist gridgraph.Distances
	opts Options
	log  logrus.FieldLogger

	dest    int
	hasDest bool
	start   int
	agent   int
	steps   int

	// cancel stops the active timer; nil when idle.
	cancel func()
	// gen identifies the current timer; ticks carrying an older gen are dropped.
	gen uint64
	// seq numbers published states; bumped under mu with every change.
	seq uint64

	// deliverMu serialises notify so observers see states in seq order.
	deliverMu sync.Mutex
	delivered uint64

	subMu  sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// New creates a Session on g with the agent placed on start.
// Returns ErrGridNil, ErrCellOutOfRange or ErrCellDisabled for bad input and
// ErrOptionViolation for invalid options.
func New(g *gridgraph.Grid, start int, opts ...Option) (*Session, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := checkCell(g, start); err != nil {
		return nil, err
	}

	return &Session{
		grid:  g,
		dist:  gridgraph.NewDistances(g),
		opts:  o,
		log:   o.Logger.WithField("component", "session"),
		start: start,
		agent: start,
		subs:  make(map[int]func(Snapshot)),
	}, nil
}

func checkCell(g *gridgraph.Grid, idx int) error {
	if !g.Contains(idx) {
		return fmt.Errorf("%w: %d", ErrCellOutOfRange, idx)
	}
	if !g.Enabled(idx) {
		return fmt.Errorf("%w: %d", ErrCellDisabled, idx)
	}
	return nil
}

// Grid returns the immutable grid.
func (s *Session) Grid() *gridgraph.Grid {
	return s.grid
}

// Select makes idx the destination: the previous destination and every
// distance are cleared, idx is labelled 0, BFS propagates from it, the step
// count restarts and the animation timer is restarted. Walls and
// out-of-range cells are rejected without touching state.
func (s *Session) Select(idx int) error {
	s.mu.Lock()
	if err := checkCell(s.grid, idx); err != nil {
		s.mu.Unlock()
		return err
	}

	if s.hasDest {
		s.dist.Reset(s.dest)
		s.hasDest = false
	}
	s.dist.Clear()

	s.dest, s.hasDest = idx, true
	s.steps = 0
	s.dist.Set(idx, 0)
	res, err := bfs.Propagate(s.grid, s.dist, idx)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: propagate from %d: %w", idx, err)
	}

	s.log.WithFields(logrus.Fields{
		"destination": idx,
		"reached":     res.Reached,
		"max_depth":   res.MaxDepth,
		"agent":       s.agent,
	}).Info("destination selected")
	if !s.dist.Get(s.agent).IsSet() {
		s.log.WithFields(logrus.Fields{
			"destination": idx,
			"agent":       s.agent,
		}).Warn("destination unreachable from agent; animation will stall")
	}

	s.restartLocked()
	snap := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Place relocates the agent onto idx. If a destination is set and the agent
// has not arrived, the animation timer is restarted.
func (s *Session) Place(idx int) error {
	s.mu.Lock()
	if err := checkCell(s.grid, idx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.agent = idx
	if s.hasDest && s.agent != s.dest {
		s.restartLocked()
	} else {
		s.stopLocked()
	}
	snap := s.publishLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Reset cancels the timer, forgets the destination, clears every distance
// and returns the agent to its start cell.
func (s *Session) Reset() {
	s.mu.Lock()
	s.stopLocked()
	s.dist.Clear()
	s.hasDest = false
	s.agent = s.start
	s.steps = 0
	snap := s.publishLocked()
	s.mu.Unlock()

	s.log.Debug("session reset")
	s.notify(snap)
}

// Close cancels the animation timer. The session stays usable; a later
// Select starts a new timer.
func (s *Session) Close() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
}

// State reports whether a destination is set.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasDest {
		return DestinationSet
	}
	return NoDestination
}

// Destination returns the selected cell, if any.
func (s *Session) Destination() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dest, s.hasDest
}

// Agent returns the agent's cell.
func (s *Session) Agent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent
}

// Distances returns a copy of the distance field.
func (s *Session) Distances() gridgraph.Distances {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dist.Clone()
}

// Animating reports whether an animation timer is active.
func (s *Session) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Snapshot returns a value copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	enabled := make([]bool, s.grid.Len())
	for i := range enabled {
		enabled[i] = s.grid.Enabled(i)
	}
	snap := Snapshot{
		Rows:      s.grid.Rows,
		Cols:      s.grid.Cols,
		Enabled:   enabled,
		Distances: s.dist.Clone(),
		Agent:     s.agent,
		Start:     s.start,
		Animating: s.cancel != nil,
		Arrived:   s.arrivedLocked(),
		Steps:     s.steps,
		Seq:       s.seq,
	}
	if s.hasDest {
		d := s.dest
		snap.Destination = &d
	}
	return snap
}

// publishLocked marks a state change and returns its snapshot.
func (s *Session) publishLocked() Snapshot {
	s.seq++
	return s.snapshotLocked()
}

// restartLocked cancels any active timer and schedules a fresh one.
func (s *Session) restartLocked() {
	s.stopLocked()
	s.gen++
	gen := s.gen
	s.cancel = s.opts.Scheduler.Every(s.opts.Interval, func() { s.tick(gen) })
}

// stopLocked cancels the active timer, if any.
func (s *Session) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// tick is the scheduler callback. Ticks from a superseded timer are ignored.
func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.cancel == nil {
		s.mu.Unlock()
		return
	}
	res := s.stepLocked()
	snap := s.publishLocked()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"from":    res.From,
		"to":      res.To,
		"moved":   res.Moved,
		"arrived": res.Arrived,
	}).Debug("tick")
	s.notify(snap)
}

// Subscribe registers fn to receive every Snapshot published after a
// change, in addition to the OnChange option. The returned func removes it.
// Snapshots arrive one at a time in Seq order; fn must not call Select,
// Place, Reset or Step on the same session.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notify publishes snap to OnChange and every subscriber. Never called with
// s.mu held. A snapshot older than one already delivered is dropped.
func (s *Session) notify(snap Snapshot) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if snap.Seq <= s.delivered {
		return
	}
	s.delivered = snap.Seq

	s.opts.OnChange(snap)

	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
