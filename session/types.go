package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ghostbfs/gridgraph"
)

// DefaultInterval is the animation period between two agent steps.
const DefaultInterval = 500 * time.Millisecond

// Sentinel errors for session operations.
var (
	// ErrGridNil is returned by New when no grid is supplied.
	ErrGridNil = errors.New("session: grid is nil")
	// ErrCellOutOfRange is returned for indices outside the grid.
	ErrCellOutOfRange = errors.New("session: cell out of range")
	// ErrCellDisabled is returned when a wall is selected or used as a start.
	ErrCellDisabled = errors.New("session: cell is disabled")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("session: invalid option supplied")
)

// State is the selection state of a Session.
type State int

const (
	// NoDestination means no cell has been selected since creation or Reset.
	NoDestination State = iota
	// DestinationSet means a distance field is in place.
	DestinationSet
)

// String returns the state name.
func (s State) String() string {
	if s == DestinationSet {
		return "destination-set"
	}
	return "no-destination"
}

// StepRule picks where the agent lands when several neighbors qualify.
type StepRule int

const (
	// StepLastQualifying relocates onto every qualifying neighbor in
	// left, up, down, right order; the last one wins.
	StepLastQualifying StepRule = iota
	// StepMinimum relocates once, onto the lowest-distance qualifying
	// neighbor (first in order on ties).
	StepMinimum
)

// Option configures a Session via functional arguments.
type Option func(*Options)

// Options holds session tuning and callbacks.
type Options struct {
	// Interval is the period between animation steps.
	Interval time.Duration
	// Scheduler drives the animation; TickerScheduler by default.
	Scheduler Scheduler
	// Rule selects the step rule.
	Rule StepRule
	// Logger receives selection, step and stall events.
	Logger logrus.FieldLogger
	// OnChange is called with a fresh Snapshot after every selection,
	// reset, relocation and every tick.
	OnChange func(Snapshot)

	err error
}

// DefaultOptions returns Options with a 500ms TickerScheduler, the
// last-qualifying step rule, the logrus standard logger and a no-op OnChange.
func DefaultOptions() Options {
	return Options{
		Interval:  DefaultInterval,
		Scheduler: TickerScheduler{},
		Rule:      StepLastQualifying,
		Logger:    logrus.StandardLogger(),
		OnChange:  func(Snapshot) {},
	}
}

// WithInterval sets the animation period. Non-positive values are rejected.
func WithInterval(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: interval must be positive (%s)", ErrOptionViolation, d)
			return
		}
		o.Interval = d
	}
}

// WithScheduler replaces the animation scheduler.
func WithScheduler(s Scheduler) Option {
	return func(o *Options) {
		if s != nil {
			o.Scheduler = s
		}
	}
}

// WithStepRule selects the step rule.
func WithStepRule(r StepRule) Option {
	return func(o *Options) {
		if r != StepLastQualifying && r != StepMinimum {
			o.err = fmt.Errorf("%w: unknown step rule %d", ErrOptionViolation, r)
			return
		}
		o.Rule = r
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnChange registers a state-change callback.
func WithOnChange(fn func(Snapshot)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnChange = fn
		}
	}
}

// StepResult reports the outcome of one animation step.
type StepResult struct {
	From    int  `json:"from"`
	To      int  `json:"to"`
	Moved   bool `json:"moved"`
	Arrived bool `json:"arrived"`
}

// Snapshot is a value copy of session state, the sole input of every
// rendering surface. Steps counts moves since the last Select. Seq grows
// with every published change, so a larger Seq is the newer state.
type Snapshot struct {
	Rows        int                 `json:"rows"`
	Cols        int                 `json:"cols"`
	Enabled     []bool              `json:"enabled"`
	Distances   gridgraph.Distances `json:"distances"`
	Destination *int                `json:"destination"`
	Agent       int                 `json:"agent"`
	Start       int                 `json:"start"`
	Animating   bool                `json:"animating"`
	Arrived     bool                `json:"arrived"`
	Steps       int                 `json:"steps"`
	Seq         uint64              `json:"seq"`
}

// Index maps (row,col) to the snapshot's row-major cell index.
func (s Snapshot) Index(row, col int) int {
	return row*s.Cols + col
}

// IsDestination reports whether idx is the selected destination.
func (s Snapshot) IsDestination(idx int) bool {
	return s.Destination != nil && *s.Destination == idx
}
