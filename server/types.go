package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ghostbfs/session"
)

// Sentinel errors.
var (
	// ErrSessionNil is returned by New when no session is supplied.
	ErrSessionNil = errors.New("server: session is nil")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("server: invalid option supplied")
)

// Defaults for websocket clients.
const (
	DefaultSendBuffer = 16
	writeWait         = 5 * time.Second
	pingPeriod        = 30 * time.Second
)

// Event types sent on the websocket.
const (
	EventSnapshot = "snapshot"
	EventError    = "error"
)

// Event is one websocket message from the server.
type Event struct {
	Type     string            `json:"type"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func snapshotEvent(snap session.Snapshot) Event {
	return Event{Type: EventSnapshot, Snapshot: &snap}
}

// Command is one websocket message from a client. Select takes precedence
// over Reset when both are present.
type Command struct {
	Select *int `json:"select,omitempty"`
	Reset  bool `json:"reset,omitempty"`
}

// Option configures a Server.
type Option func(*Options)

// Options holds Server settings.
type Options struct {
	Logger logrus.FieldLogger
	// SendBuffer is the per-client queue length; events beyond it are dropped.
	SendBuffer int

	err error
}

// DefaultOptions returns the standard logger and DefaultSendBuffer.
func DefaultOptions() Options {
	return Options{
		Logger:     logrus.StandardLogger(),
		SendBuffer: DefaultSendBuffer,
	}
}

// WithLogger sets the logger; nil keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSendBuffer sets the per-client queue length. n must be positive.
func WithSendBuffer(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: send buffer must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.SendBuffer = n
	}
}
