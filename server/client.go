package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ghostbfs/session"
)

// client is one websocket connection. Only the writer goroutine writes to conn.
type client struct {
	conn *websocket.Conn
	send chan Event
	log  logrus.FieldLogger
	// seq is the newest snapshot queued; guarded by Server.mu.
	seq uint64
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	c := &client{
		conn: conn,
		send: make(chan Event, s.opts.SendBuffer),
		log:  s.log.WithField("remote", r.RemoteAddr),
	}
	if !s.register(c) {
		conn.Close()
		return
	}
	c.log.Info("websocket client connected")

	go c.writeLoop()
	s.readLoop(c)

	s.unregister(c)
	c.log.Info("websocket client disconnected")
}

// register adds c and queues the current snapshot as its first event.
// It fails once the server is closed.
func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients.Put(c)
	snap := s.sess.Snapshot()
	c.seq = snap.Seq
	c.send <- snapshotEvent(snap)
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clients.Has(c) {
		return
	}
	s.clients.Remove(c)
	close(c.send)
	c.conn.Close()
}

// Broadcast queues snap for every client that has not yet been sent a
// newer one. Full queues drop the event.
func (s *Server) Broadcast(snap session.Snapshot) {
	ev := snapshotEvent(snap)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients.Each(func(c *client) {
		if snap.Seq <= c.seq {
			return
		}
		c.seq = snap.Seq
		c.enqueue(ev)
	})
}

func (c *client) enqueue(ev Event) {
	select {
	case c.send <- ev:
	default:
		c.log.WithField("type", ev.Type).Warn("client queue full, event dropped")
	}
}

// readLoop applies client commands until the connection fails.
func (s *Server) readLoop(c *client) {
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if err := s.apply(cmd); err != nil {
			s.mu.Lock()
			if s.clients.Has(c) {
				c.enqueue(Event{Type: EventError, Error: err.Error()})
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) apply(cmd Command) error {
	switch {
	case cmd.Select != nil:
		return s.sess.Select(*cmd.Select)
	case cmd.Reset:
		s.sess.Reset()
	}
	return nil
}

// writeLoop drains c.send to the socket and keeps the connection alive.
func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.log.WithError(err).Warn("websocket write failed")
				c.conn.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Warn("websocket ping failed")
				c.conn.Close()
				return
			}
		}
	}
}
